// Package editor implements the editable state for a single response entry:
// one open draft of a scored perception, from first keystroke to the moment
// it is recorded into the session.
package editor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"
	"github.com/Vineet-Sharma1927/InkSight/internal/models"
	"github.com/Vineet-Sharma1927/InkSight/internal/taxonomy"
)

// ValidationError reports a rejected field edit or record attempt. The
// message is meant to render next to the offending control.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Editor holds the draft state of one response entry. Location and FQ can
// only be set by running analysis; every other field is examiner input.
// All methods are safe for concurrent use.
type Editor struct {
	mu sync.Mutex

	slotID     uint64
	imageIndex int
	analyzer   analyzer.Analyzer

	position          string
	responseText      string
	numberOfResponses int
	determinants      taxonomy.Selection
	content           taxonomy.Selection
	specialScores     taxonomy.Selection
	dq                string
	zScore            string
	location          string
	fq                string

	// generation invalidates analysis responses that resolve after the
	// editor was reset for a new image.
	generation uint64
}

// New creates an editor for the given draft slot and stimulus image.
func New(slotID uint64, imageIndex int, an analyzer.Analyzer) *Editor {
	return &Editor{
		slotID:            slotID,
		imageIndex:        imageIndex,
		analyzer:          an,
		numberOfResponses: 1,
	}
}

// SlotID returns the draft slot identity this editor is keyed by.
func (e *Editor) SlotID() uint64 { return e.slotID }

// ImageIndex returns the stimulus image this editor is scoring.
func (e *Editor) ImageIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.imageIndex
}

// SetPosition records the card orientation. Empty clears it.
func (e *Editor) SetPosition(p string) error {
	if p != "" && !models.Position(p).Valid() {
		return &ValidationError{Field: "position", Message: "unknown position symbol"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = p
	return nil
}

// SetResponseText records the free-text response.
func (e *Editor) SetResponseText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responseText = text
}

// SetNumberOfResponses records the repeat count, bounded to [1,99].
func (e *Editor) SetNumberOfResponses(n int) error {
	if n < 1 || n > 99 {
		return &ValidationError{Field: "number_of_responses", Message: "must be between 1 and 99"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.numberOfResponses = n
	return nil
}

// SetDQ records the developmental quality. Empty clears it.
func (e *Editor) SetDQ(dq string) error {
	if dq != "" && !models.ValidDQ(dq) {
		return &ValidationError{Field: "dq", Message: "unknown developmental quality code"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dq = dq
	return nil
}

// SetZScore records the organizational score. Empty clears it.
func (e *Editor) SetZScore(z string) error {
	if z != "" && !models.ValidZScore(z) {
		return &ValidationError{Field: "z_score", Message: "unknown z-score code"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.zScore = z
	return nil
}

// ToggleDeterminant flips membership of code in the determinant selection.
func (e *Editor) ToggleDeterminant(code string) error {
	return e.toggle(taxonomy.Determinants, &e.determinants, "determinants", code)
}

// ToggleContent flips membership of code in the content selection.
func (e *Editor) ToggleContent(code string) error {
	return e.toggle(taxonomy.Contents, &e.content, "content", code)
}

// ToggleSpecialScore flips membership of code in the special score selection.
func (e *Editor) ToggleSpecialScore(code string) error {
	return e.toggle(taxonomy.SpecialScores, &e.specialScores, "special_score", code)
}

func (e *Editor) toggle(t *taxonomy.Taxonomy, sel *taxonomy.Selection, field, code string) error {
	if !t.Contains(code) {
		return &ValidationError{Field: field, Message: fmt.Sprintf("unknown %s code %q", t.Name, code)}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	sel.Toggle(code)
	return nil
}

// Analyze sends the response text to the classifier. On a match the
// suggested location and FQ are written into the draft; on a no-match the
// draft is untouched and the informational result is passed through. A
// transport error also leaves the draft untouched. A result that resolves
// after the editor was reset for another image is discarded.
func (e *Editor) Analyze(ctx context.Context) (analyzer.Result, error) {
	e.mu.Lock()
	text := e.responseText
	image := e.imageIndex
	gen := e.generation
	e.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return analyzer.Result{}, &ValidationError{Field: "response_text", Message: "enter a response text first"}
	}

	result, err := e.analyzer.AnalyzeResponse(ctx, text, image)
	if err != nil {
		return analyzer.Result{}, fmt.Errorf("analyze response: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != gen {
		// Stale response from before a reset; ignore it.
		return analyzer.Result{MatchFound: false, Message: "editor was reset"}, nil
	}
	if result.MatchFound {
		e.location = result.Location
		e.fq = result.FQ
	}
	return result, nil
}

// Record validates the draft and returns the completed entry. Invalid
// drafts are rejected with a field-specific error and nothing is emitted.
func (e *Editor) Record() (models.ResponseEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	text := strings.TrimSpace(e.responseText)
	if text == "" {
		return models.ResponseEntry{}, &ValidationError{Field: "response_text", Message: "response text is required"}
	}
	if e.position == "" {
		return models.ResponseEntry{}, &ValidationError{Field: "position", Message: "select a position before recording"}
	}
	return e.entryLocked(text), nil
}

func (e *Editor) entryLocked(text string) models.ResponseEntry {
	return models.ResponseEntry{
		Position:          e.position,
		ResponseText:      text,
		NumberOfResponses: e.numberOfResponses,
		Determinants:      e.determinants.Codes(),
		Content:           e.content.Codes(),
		DQ:                e.dq,
		ZScore:            e.zScore,
		SpecialScore:      e.specialScores.Codes(),
		Location:          e.location,
		FQ:                e.fq,
	}
}

// ResetForImage clears every field back to its initial value for a new
// stimulus image. Nothing carries over between images.
func (e *Editor) ResetForImage(imageIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.imageIndex = imageIndex
	e.position = ""
	e.responseText = ""
	e.numberOfResponses = 1
	e.determinants.Clear()
	e.content.Clear()
	e.specialScores.Clear()
	e.dq = ""
	e.zScore = ""
	e.location = ""
	e.fq = ""
	e.generation++
}

// Snapshot returns a read-only copy of the draft for state endpoints.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		SlotID:            e.slotID,
		ImageIndex:        e.imageIndex,
		Position:          e.position,
		ResponseText:      e.responseText,
		NumberOfResponses: e.numberOfResponses,
		Determinants:      e.determinants.Codes(),
		Content:           e.content.Codes(),
		DQ:                e.dq,
		ZScore:            e.zScore,
		SpecialScore:      e.specialScores.Codes(),
		Location:          e.location,
		FQ:                e.fq,
	}
}

// Snapshot is the serializable view of an open draft.
type Snapshot struct {
	SlotID            uint64   `json:"slot_id"`
	ImageIndex        int      `json:"image_index"`
	Position          string   `json:"position"`
	ResponseText      string   `json:"response_text"`
	NumberOfResponses int      `json:"number_of_responses"`
	Determinants      []string `json:"determinants"`
	Content           []string `json:"content"`
	DQ                string   `json:"dq"`
	ZScore            string   `json:"z_score"`
	SpecialScore      []string `json:"special_score"`
	Location          string   `json:"location"`
	FQ                string   `json:"fq"`
}
