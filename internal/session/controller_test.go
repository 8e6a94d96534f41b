package session

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"
	"github.com/Vineet-Sharma1927/InkSight/internal/models"

	"go.uber.org/zap"
)

type stubAnalyzer struct {
	result analyzer.Result
	err    error
}

func (s *stubAnalyzer) AnalyzeResponse(ctx context.Context, text string, image int) (analyzer.Result, error) {
	return s.result, s.err
}

// stubSubmitter captures the submitted payload and optionally fails.
type stubSubmitter struct {
	err   error
	calls int
	last  *models.Patient
}

func (s *stubSubmitter) SubmitSession(ctx context.Context, patient *models.Patient) (string, error) {
	s.calls++
	s.last = patient
	if s.err != nil {
		return "", s.err
	}
	return patient.PatientID, nil
}

func newTestController(t *testing.T, totalImages int, sub Submitter) *Controller {
	t.Helper()
	if sub == nil {
		sub = &stubSubmitter{}
	}
	return NewController(zap.NewNop(), &stubAnalyzer{}, sub, totalImages)
}

func completeMetadata() models.PatientMetadata {
	return models.PatientMetadata{
		PatientName: "John Doe",
		PatientID:   "P001",
		Age:         "28",
		Gender:      "Male",
		TestDate:    "2026-03-14",
	}
}

// record fills the slot's draft and commits it.
func record(t *testing.T, c *Controller, slotID uint64, text string) models.ResponseEntry {
	t.Helper()
	ed, ok := c.Slot(slotID)
	if !ok {
		t.Fatalf("slot %d not open", slotID)
	}
	ed.SetResponseText(text)
	if err := ed.SetPosition("^"); err != nil {
		t.Fatal(err)
	}
	entry, err := c.RecordSlot(slotID)
	if err != nil {
		t.Fatalf("RecordSlot(%d): %v", slotID, err)
	}
	return entry
}

func TestNewControllerOpensOneSlot(t *testing.T) {
	c := newTestController(t, 10, nil)
	if c.CurrentImage() != 1 {
		t.Errorf("CurrentImage = %d, want 1", c.CurrentImage())
	}
	if got := len(c.Slots()); got != 1 {
		t.Errorf("open slots = %d, want 1", got)
	}
	if c.State() != StateEditing {
		t.Errorf("State = %q, want editing", c.State())
	}
	if c.Dirty() {
		t.Error("fresh session reports dirty")
	}
}

func TestRecordSameSlotReplacesEntry(t *testing.T) {
	c := newTestController(t, 10, nil)
	slotID := c.Slots()[0].SlotID()

	record(t, c, slotID, "a bat")
	record(t, c, slotID, "a butterfly")

	if got := c.EntryCount(1); got != 1 {
		t.Fatalf("EntryCount = %d, want 1 after re-recording the same slot", got)
	}
}

func TestEntriesKeepSlotCreationOrder(t *testing.T) {
	sub := &stubSubmitter{}
	c := newTestController(t, 1, sub)

	first := c.Slots()[0].SlotID()
	second := c.AddDraftSlot().SlotID()
	third := c.AddDraftSlot().SlotID()

	// Record out of creation order.
	record(t, c, third, "third")
	record(t, c, first, "first")
	record(t, c, second, "second")

	c.SetMetadata(completeMetadata())
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var texts []string
	for _, e := range sub.last.Responses[0].Entries {
		texts = append(texts, e.ResponseText)
	}
	if !reflect.DeepEqual(texts, []string{"first", "second", "third"}) {
		t.Errorf("entry order = %v, want creation order", texts)
	}
	for i, e := range sub.last.Responses[0].Entries {
		if e.Seq != i {
			t.Errorf("entry %d has seq %d", i, e.Seq)
		}
	}
}

func TestAdvanceRejectedWithoutEntries(t *testing.T) {
	c := newTestController(t, 10, nil)
	if err := c.AdvanceImage(); !errors.Is(err, ErrNoEntries) {
		t.Fatalf("AdvanceImage = %v, want ErrNoEntries", err)
	}
	if c.CurrentImage() != 1 {
		t.Errorf("rejected advance moved the image to %d", c.CurrentImage())
	}
}

func TestAdvanceDiscardsDraftsAndOpensFreshSlot(t *testing.T) {
	c := newTestController(t, 10, nil)
	slotID := c.Slots()[0].SlotID()
	record(t, c, slotID, "a bat")

	// A second draft with unsaved text; advancing must not merge it.
	dangling := c.AddDraftSlot()
	dangling.SetResponseText("half-typed")

	if err := c.AdvanceImage(); err != nil {
		t.Fatalf("AdvanceImage: %v", err)
	}

	if c.CurrentImage() != 2 {
		t.Errorf("CurrentImage = %d, want 2", c.CurrentImage())
	}
	slots := c.Slots()
	if len(slots) != 1 {
		t.Fatalf("open slots = %d, want exactly 1 fresh slot", len(slots))
	}
	if slots[0].SlotID() == slotID || slots[0].SlotID() == dangling.SlotID() {
		t.Error("advance reused an old slot id")
	}
	if snap := slots[0].Snapshot(); snap.ResponseText != "" {
		t.Errorf("fresh slot carried over text %q", snap.ResponseText)
	}
	if c.EntryCount(1) != 1 {
		t.Error("advance lost the committed entry for image 1")
	}
	if c.EntryCount(2) != 0 {
		t.Error("discarded draft leaked into image 2")
	}
}

func TestAdvanceRejectedOnFinalImage(t *testing.T) {
	c := newTestController(t, 2, nil)
	record(t, c, c.Slots()[0].SlotID(), "one")
	if err := c.AdvanceImage(); err != nil {
		t.Fatal(err)
	}
	record(t, c, c.Slots()[0].SlotID(), "two")

	if err := c.AdvanceImage(); !errors.Is(err, ErrLastImage) {
		t.Fatalf("AdvanceImage = %v, want ErrLastImage", err)
	}
}

func TestRemoveDraftSlotDeletesCurrentImageEntry(t *testing.T) {
	c := newTestController(t, 10, nil)
	slotID := c.Slots()[0].SlotID()
	record(t, c, slotID, "a bat")

	if err := c.RemoveDraftSlot(slotID); err != nil {
		t.Fatalf("RemoveDraftSlot: %v", err)
	}
	if c.EntryCount(1) != 0 {
		t.Error("removal left the committed entry behind")
	}
	if _, ok := c.Slot(slotID); ok {
		t.Error("removed slot still open")
	}
}

func TestRemoveSlotDoesNotTouchEarlierImages(t *testing.T) {
	c := newTestController(t, 10, nil)

	// Record one entry each on images 1 and 2, then move to image 3.
	record(t, c, c.Slots()[0].SlotID(), "image one")
	if err := c.AdvanceImage(); err != nil {
		t.Fatal(err)
	}
	record(t, c, c.Slots()[0].SlotID(), "image two")
	if err := c.AdvanceImage(); err != nil {
		t.Fatal(err)
	}

	slotID := c.Slots()[0].SlotID()
	record(t, c, slotID, "image three")
	if err := c.RemoveDraftSlot(slotID); err != nil {
		t.Fatal(err)
	}

	if c.EntryCount(3) != 0 {
		t.Error("entry on image 3 survived removal")
	}
	if c.EntryCount(1) != 1 || c.EntryCount(2) != 1 {
		t.Error("removal on image 3 touched earlier images")
	}
}

func TestRemoveUnknownSlot(t *testing.T) {
	c := newTestController(t, 10, nil)
	if err := c.RemoveDraftSlot(12345); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("RemoveDraftSlot = %v, want ErrUnknownSlot", err)
	}
}

func TestDirtyTracking(t *testing.T) {
	c := newTestController(t, 10, nil)
	if c.Dirty() {
		t.Fatal("fresh session is dirty")
	}

	c.SetMetadata(models.PatientMetadata{PatientName: "John"})
	if !c.Dirty() {
		t.Error("metadata did not mark the session dirty")
	}

	c.SetMetadata(models.PatientMetadata{})
	if c.Dirty() {
		t.Error("cleared metadata left the session dirty")
	}

	record(t, c, c.Slots()[0].SlotID(), "a bat")
	if !c.Dirty() {
		t.Error("recorded entry did not mark the session dirty")
	}
}

func TestSubmitRejectedBeforeFinalImage(t *testing.T) {
	sub := &stubSubmitter{}
	c := newTestController(t, 10, sub)
	record(t, c, c.Slots()[0].SlotID(), "a bat")
	c.SetMetadata(completeMetadata())

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrNotFinalImage) {
		t.Fatalf("Submit = %v, want ErrNotFinalImage", err)
	}
	if sub.calls != 0 {
		t.Error("local rejection reached the network")
	}
}

func TestSubmitRejectedWithIncompleteMetadata(t *testing.T) {
	sub := &stubSubmitter{}
	c := newTestController(t, 1, sub)
	record(t, c, c.Slots()[0].SlotID(), "a bat")

	m := completeMetadata()
	m.Age = ""
	c.SetMetadata(m)

	_, err := c.Submit(context.Background())
	if !errors.Is(err, ErrIncompleteMetadata) {
		t.Fatalf("Submit = %v, want ErrIncompleteMetadata", err)
	}
	if sub.calls != 0 {
		t.Error("local rejection reached the network")
	}
}

func TestSubmitRejectedWithoutFinalImageEntries(t *testing.T) {
	sub := &stubSubmitter{}
	c := newTestController(t, 1, sub)
	c.SetMetadata(completeMetadata())

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrNoEntries) {
		t.Fatalf("Submit = %v, want ErrNoEntries", err)
	}
	if sub.calls != 0 {
		t.Error("local rejection reached the network")
	}
}

func TestSubmitSuccessResetsSession(t *testing.T) {
	sub := &stubSubmitter{}
	c := newTestController(t, 1, sub)
	oldSlot := c.Slots()[0].SlotID()
	record(t, c, oldSlot, "a bat")
	c.SetMetadata(completeMetadata())

	patientID, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if patientID != "P001" {
		t.Errorf("patientID = %q, want P001", patientID)
	}

	if c.State() != StateSubmitted {
		t.Errorf("State = %q, want submitted", c.State())
	}
	if c.Dirty() {
		t.Error("session still dirty after a confirmed submission")
	}
	if c.CurrentImage() != 1 {
		t.Errorf("CurrentImage = %d, want 1 after reset", c.CurrentImage())
	}
	if !c.Metadata().Empty() {
		t.Error("metadata survived the reset")
	}
	if c.EntryCount(1) != 0 {
		t.Error("entries survived the reset")
	}
	if c.LastPatientID() != "P001" {
		t.Errorf("LastPatientID = %q, want P001", c.LastPatientID())
	}

	// Slot ids keep counting; the fresh slot must not reuse an old id.
	if got := c.Slots()[0].SlotID(); got <= oldSlot {
		t.Errorf("fresh slot id %d not beyond %d", got, oldSlot)
	}
}

func TestSubmitFailurePreservesEverything(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("database unavailable")}
	c := newTestController(t, 2, sub)

	record(t, c, c.Slots()[0].SlotID(), "image one")
	if err := c.AdvanceImage(); err != nil {
		t.Fatal(err)
	}
	entry := record(t, c, c.Slots()[0].SlotID(), "image two")
	meta := completeMetadata()
	c.SetMetadata(meta)

	before := c.Snapshot()

	_, err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected the submission to fail")
	}

	if c.State() != StateSubmitFailed {
		t.Errorf("State = %q, want submit_failed", c.State())
	}
	if c.LastError() == "" {
		t.Error("failure message was not retained")
	}
	if !c.Dirty() {
		t.Error("failed submission cleared the dirty flag")
	}
	if got := c.Metadata(); got != meta {
		t.Errorf("metadata changed: %+v", got)
	}
	if c.EntryCount(1) != before.EntryCounts[1] || c.EntryCount(2) != before.EntryCounts[2] {
		t.Error("entry counts changed after a failed submission")
	}
	if sub.last.Responses[1].Entries[0].ResponseText != entry.ResponseText {
		t.Error("payload did not carry the recorded entry")
	}

	// Retry after the collaborator recovers.
	sub.err = nil
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if c.State() != StateSubmitted {
		t.Errorf("State after retry = %q, want submitted", c.State())
	}
	if c.LastError() != "" {
		t.Errorf("LastError = %q, want cleared after success", c.LastError())
	}
}

func TestFullTenImageSession(t *testing.T) {
	sub := &stubSubmitter{}
	c := newTestController(t, 10, sub)

	for img := 1; img <= 10; img++ {
		if c.CurrentImage() != img {
			t.Fatalf("CurrentImage = %d, want %d", c.CurrentImage(), img)
		}
		// Two entries per image, from two slots.
		record(t, c, c.Slots()[0].SlotID(), fmt.Sprintf("first on image %d", img))
		second := c.AddDraftSlot().SlotID()
		record(t, c, second, "second on image "+strconv.Itoa(img))

		if img < 10 {
			if err := c.AdvanceImage(); err != nil {
				t.Fatalf("AdvanceImage on image %d: %v", img, err)
			}
		}
	}

	c.SetMetadata(completeMetadata())
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(sub.last.Responses) != 10 {
		t.Fatalf("payload has %d image responses, want 10", len(sub.last.Responses))
	}
	for i, img := range sub.last.Responses {
		if img.ImageNumber != i+1 {
			t.Errorf("response %d has image_number %d", i, img.ImageNumber)
		}
		if len(img.Entries) != 2 {
			t.Errorf("image %d has %d entries, want 2", img.ImageNumber, len(img.Entries))
		}
	}
	if sub.last.Age != 28 {
		t.Errorf("payload age = %d, want 28", sub.last.Age)
	}
}

func TestStateTransitions(t *testing.T) {
	c := newTestController(t, 10, nil)
	if c.State() != StateEditing {
		t.Fatalf("State = %q, want editing", c.State())
	}

	slotID := c.Slots()[0].SlotID()
	record(t, c, slotID, "a bat")
	if c.State() != StateAwaitingAdvance {
		t.Errorf("State = %q, want awaiting_advance after first entry", c.State())
	}

	if err := c.RemoveDraftSlot(slotID); err != nil {
		t.Fatal(err)
	}
	if c.State() != StateEditing {
		t.Errorf("State = %q, want editing after removing the only entry", c.State())
	}
}
