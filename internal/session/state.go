package session

import (
	"sort"

	"github.com/Vineet-Sharma1927/InkSight/internal/models"
)

// State names the phase of a capture session.
type State string

const (
	// StateEditing: the examiner is entering responses for the current image.
	StateEditing State = "editing"
	// StateAwaitingAdvance: at least one response is recorded on a
	// non-final image and the next-image affordance is shown.
	StateAwaitingAdvance State = "awaiting_advance"
	// StateFinalizing: a submission is in flight.
	StateFinalizing State = "finalizing"
	// StateSubmitted: the last submission succeeded and the session was reset.
	StateSubmitted State = "submitted"
	// StateSubmitFailed: the last submission failed; all data is retained.
	StateSubmitFailed State = "submit_failed"
)

// imageSet holds the entries committed for one stimulus image, keyed by the
// draft slot that produced them. Flattening strips the slot identities and
// yields entries in slot-creation order.
type imageSet struct {
	entries map[uint64]entryRecord
}

type entryRecord struct {
	slotID uint64
	entry  models.ResponseEntry
}

func newImageSet() *imageSet {
	return &imageSet{entries: make(map[uint64]entryRecord)}
}

func (s *imageSet) upsert(slotID uint64, entry models.ResponseEntry) {
	s.entries[slotID] = entryRecord{slotID: slotID, entry: entry}
}

func (s *imageSet) remove(slotID uint64) bool {
	if _, ok := s.entries[slotID]; !ok {
		return false
	}
	delete(s.entries, slotID)
	return true
}

func (s *imageSet) len() int {
	return len(s.entries)
}

// ordered returns the records sorted by slot id. Slot ids are handed out
// monotonically, so this is creation order.
func (s *imageSet) ordered() []entryRecord {
	out := make([]entryRecord, 0, len(s.entries))
	for _, rec := range s.entries {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].slotID < out[j].slotID })
	return out
}
