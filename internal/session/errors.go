package session

import "errors"

// Rejections raised by the capture state machine. All of them are local
// validation outcomes; none of them touch the network or mutate data.
var (
	// ErrNoEntries rejects advancing or submitting while the current
	// image has no recorded responses.
	ErrNoEntries = errors.New("current image has no recorded responses")

	// ErrLastImage rejects advancing past the final stimulus.
	ErrLastImage = errors.New("already on the final image")

	// ErrNotFinalImage rejects submitting before the final stimulus.
	ErrNotFinalImage = errors.New("submission is only allowed on the final image")

	// ErrIncompleteMetadata rejects submitting while required patient
	// fields are blank.
	ErrIncompleteMetadata = errors.New("required patient fields are missing")

	// ErrUnknownSlot reports an operation against a slot id that is
	// neither open nor committed on the current image.
	ErrUnknownSlot = errors.New("unknown draft slot")
)
