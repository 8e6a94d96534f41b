// Package session implements the multi-image capture state machine: one
// controller per examiner session walks the fixed stimulus sequence,
// collects recorded entries per image, tracks unsaved data and assembles
// the final submission payload.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"
	"github.com/Vineet-Sharma1927/InkSight/internal/editor"
	"github.com/Vineet-Sharma1927/InkSight/internal/models"

	"go.uber.org/zap"
)

// Submitter is the persistence collaborator that accepts a completed test
// record and returns the stored patient id.
type Submitter interface {
	SubmitSession(ctx context.Context, patient *models.Patient) (string, error)
}

// Controller owns one in-progress patient session. It is the only mutator
// of the aggregate: metadata, the per-image recorded entries and the open
// draft slots all change through its methods.
type Controller struct {
	mu sync.Mutex

	log       *zap.Logger
	analyzer  analyzer.Analyzer
	submitter Submitter

	totalImages  int
	currentImage int
	state        State

	metadata models.PatientMetadata
	// responses holds the committed entries per visited image.
	responses map[int]*imageSet
	// slots are the open editors for the current image, in creation order.
	slots []*editor.Editor
	// nextSlotID is never reset; slot ids are unique for the lifetime of
	// the controller so a replaced editor can never be confused with a
	// stale one.
	nextSlotID uint64

	lastError     string
	lastPatientID string
}

// NewController starts a fresh session on image 1 with a single open draft
// slot.
func NewController(log *zap.Logger, an analyzer.Analyzer, sub Submitter, totalImages int) *Controller {
	c := &Controller{
		log:          log,
		analyzer:     an,
		submitter:    sub,
		totalImages:  totalImages,
		currentImage: 1,
		state:        StateEditing,
		responses:    make(map[int]*imageSet),
	}
	c.addSlotLocked()
	return c
}

// TotalImages returns the fixed length of the stimulus sequence.
func (c *Controller) TotalImages() int { return c.totalImages }

// CurrentImage returns the index of the image being scored, 1-based.
func (c *Controller) CurrentImage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentImage
}

// State returns the session phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AddDraftSlot opens a new editor for the current image and returns it.
func (c *Controller) AddDraftSlot() *editor.Editor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addSlotLocked()
}

func (c *Controller) addSlotLocked() *editor.Editor {
	c.nextSlotID++
	ed := editor.New(c.nextSlotID, c.currentImage, c.analyzer)
	c.slots = append(c.slots, ed)
	return ed
}

// Slot returns the open editor with the given id, if any.
func (c *Controller) Slot(id uint64) (*editor.Editor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ed := range c.slots {
		if ed.SlotID() == id {
			return ed, true
		}
	}
	return nil, false
}

// Slots returns the open editors in creation order.
func (c *Controller) Slots() []*editor.Editor {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*editor.Editor, len(c.slots))
	copy(out, c.slots)
	return out
}

// RemoveDraftSlot closes the editor with the given id and deletes any entry
// it had recorded for the current image. Entries recorded for earlier
// images are untouched. Removing the last open slot is allowed; the
// examiner must open a new one before recording further responses.
func (c *Controller) RemoveDraftSlot(id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := false
	for i, ed := range c.slots {
		if ed.SlotID() == id {
			c.slots = append(c.slots[:i], c.slots[i+1:]...)
			removed = true
			break
		}
	}
	if set, ok := c.responses[c.currentImage]; ok {
		if set.remove(id) {
			removed = true
		}
	}
	if !removed {
		return ErrUnknownSlot
	}
	c.refreshStateLocked()
	return nil
}

// CommitEntry upserts entry into the current image's recorded set, keyed by
// the draft slot that produced it. Re-recording from the same slot replaces
// the earlier entry in place.
func (c *Controller) CommitEntry(slotID uint64, entry models.ResponseEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.responses[c.currentImage]
	if !ok {
		set = newImageSet()
		c.responses[c.currentImage] = set
	}
	set.upsert(slotID, entry)
	c.refreshStateLocked()
}

// RecordSlot validates the slot's draft and, if valid, commits it. Invalid
// drafts are rejected without touching the recorded set.
func (c *Controller) RecordSlot(slotID uint64) (models.ResponseEntry, error) {
	ed, ok := c.Slot(slotID)
	if !ok {
		return models.ResponseEntry{}, ErrUnknownSlot
	}
	entry, err := ed.Record()
	if err != nil {
		return models.ResponseEntry{}, err
	}
	c.CommitEntry(slotID, entry)
	return entry, nil
}

// EntryCount returns the number of entries recorded for image n.
func (c *Controller) EntryCount(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.responses[n]; ok {
		return set.len()
	}
	return 0
}

// ShowAdvance reports whether the next-image affordance should be visible:
// at least one recorded entry and not on the final image.
func (c *Controller) ShowAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showAdvanceLocked()
}

func (c *Controller) showAdvanceLocked() bool {
	set, ok := c.responses[c.currentImage]
	return ok && set.len() > 0 && c.currentImage < c.totalImages
}

// AdvanceImage moves to the next stimulus. It is rejected while the current
// image has no recorded entries. All open drafts are discarded, never
// merged, and exactly one fresh slot is opened for the new image.
func (c *Controller) AdvanceImage() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.responses[c.currentImage]
	if !ok || set.len() == 0 {
		return ErrNoEntries
	}
	if c.currentImage >= c.totalImages {
		return ErrLastImage
	}

	c.currentImage++
	c.slots = nil
	c.addSlotLocked()
	c.state = StateEditing
	return nil
}

// SetMetadata replaces the patient details typed so far.
func (c *Controller) SetMetadata(m models.PatientMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata = m
}

// Metadata returns the patient details typed so far.
func (c *Controller) Metadata() models.PatientMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metadata
}

// Dirty reports whether unsaved session data exists: any non-blank patient
// field or any recorded entry. A successful submission resets the session,
// which makes this false unconditionally.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirtyLocked()
}

func (c *Controller) dirtyLocked() bool {
	if !c.metadata.Empty() {
		return true
	}
	for _, set := range c.responses {
		if set.len() > 0 {
			return true
		}
	}
	return false
}

// Submit validates and sends the whole session to the persistence
// collaborator. Local validation failures never reach the network. On a
// confirmed success the session resets to its initial empty state and the
// new patient id is returned; on a remote failure every recorded entry and
// all metadata are preserved unchanged and the failure message is retained
// for display.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()

	if c.currentImage != c.totalImages {
		c.mu.Unlock()
		return "", ErrNotFinalImage
	}
	if missing := c.metadata.MissingRequired(); len(missing) > 0 {
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrIncompleteMetadata, strings.Join(missing, ", "))
	}
	set, ok := c.responses[c.currentImage]
	if !ok || set.len() == 0 {
		c.mu.Unlock()
		return "", ErrNoEntries
	}

	patient, err := c.metadata.ToPatient()
	if err != nil {
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrIncompleteMetadata, err.Error())
	}
	patient.Responses = c.flattenLocked()
	c.state = StateFinalizing
	c.mu.Unlock()

	// The aggregate is not held locked across the network call; the
	// payload above is a deep copy of the recorded data.
	patientID, err := c.submitter.SubmitSession(ctx, patient)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateSubmitFailed
		c.lastError = err.Error()
		c.log.Error("Session submission failed", zap.Error(err), zap.String("patient_id", patient.PatientID))
		return "", fmt.Errorf("submit session: %w", err)
	}

	c.resetLocked()
	c.state = StateSubmitted
	c.lastPatientID = patientID
	c.log.Info("Session submitted", zap.String("patient_id", patientID))
	return patientID, nil
}

// flattenLocked assembles the ordered ImageResponse sequence, slot
// identities stripped, entries in slot-creation order.
func (c *Controller) flattenLocked() []models.ImageResponse {
	var out []models.ImageResponse
	for n := 1; n <= c.totalImages; n++ {
		set, ok := c.responses[n]
		if !ok || set.len() == 0 {
			continue
		}
		img := models.ImageResponse{ImageNumber: n}
		for seq, rec := range set.ordered() {
			entry := rec.entry
			entry.Seq = seq
			img.Entries = append(img.Entries, entry)
		}
		out = append(out, img)
	}
	return out
}

// resetLocked returns the session to its initial empty state. The slot id
// counter is deliberately not reset.
func (c *Controller) resetLocked() {
	c.metadata = models.PatientMetadata{}
	c.responses = make(map[int]*imageSet)
	c.currentImage = 1
	c.slots = nil
	c.addSlotLocked()
	c.lastError = ""
}

// refreshStateLocked derives the editing phase after a commit or removal.
func (c *Controller) refreshStateLocked() {
	if c.showAdvanceLocked() {
		c.state = StateAwaitingAdvance
	} else {
		c.state = StateEditing
	}
}

// LastError returns the retained message of the most recent failed
// submission, empty when the last submission succeeded.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// LastPatientID returns the patient id from the most recent successful
// submission.
func (c *Controller) LastPatientID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPatientID
}

// Snapshot is the serializable view of the session for the state endpoint.
type Snapshot struct {
	State         State                  `json:"state"`
	CurrentImage  int                    `json:"current_image"`
	TotalImages   int                    `json:"total_images"`
	Dirty         bool                   `json:"dirty"`
	ShowAdvance   bool                   `json:"show_advance"`
	Metadata      models.PatientMetadata `json:"metadata"`
	OpenSlots     []editor.Snapshot      `json:"open_slots"`
	EntryCounts   map[int]int            `json:"entry_counts"`
	LastError     string                 `json:"last_error,omitempty"`
	LastPatientID string                 `json:"last_patient_id,omitempty"`
}

// Snapshot captures the observable session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:         c.state,
		CurrentImage:  c.currentImage,
		TotalImages:   c.totalImages,
		Dirty:         c.dirtyLocked(),
		ShowAdvance:   c.showAdvanceLocked(),
		Metadata:      c.metadata,
		EntryCounts:   make(map[int]int),
		LastError:     c.lastError,
		LastPatientID: c.lastPatientID,
	}
	for _, ed := range c.slots {
		snap.OpenSlots = append(snap.OpenSlots, ed.Snapshot())
	}
	for n, set := range c.responses {
		if set.len() > 0 {
			snap.EntryCounts[n] = set.len()
		}
	}
	return snap
}
