package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vineet-Sharma1927/InkSight/internal/editor"
	"github.com/Vineet-Sharma1927/InkSight/internal/models"
	"github.com/Vineet-Sharma1927/InkSight/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CaptureHandler drives the multi-image response capture wizard. Each
// browser session gets its own controller; the handler only translates
// HTTP to controller operations.
type CaptureHandler struct {
	log     *zap.Logger
	manager *session.Manager
}

func NewCaptureHandler(log *zap.Logger, manager *session.Manager) *CaptureHandler {
	return &CaptureHandler{log: log, manager: manager}
}

func (h *CaptureHandler) controller(c *gin.Context) (*session.Controller, *session.Guard) {
	return h.manager.Get(SessionToken(c))
}

// State returns the full session snapshot.
func (h *CaptureHandler) State(c *gin.Context) {
	ctrl, _ := h.controller(c)
	snap := ctrl.Snapshot()

	csrfToken, _ := c.Get("csrf_token")
	c.JSON(http.StatusOK, gin.H{
		"session":    snap,
		"csrf_token": csrfToken,
	})
}

// AddSlot opens a fresh draft editor for the current image.
func (h *CaptureHandler) AddSlot(c *gin.Context) {
	ctrl, _ := h.controller(c)
	ed := ctrl.AddDraftSlot()
	c.JSON(http.StatusCreated, gin.H{
		"slot_id":      ed.SlotID(),
		"image_number": ed.ImageIndex(),
	})
}

// RemoveSlot closes a draft editor and deletes its recorded entry for the
// current image.
func (h *CaptureHandler) RemoveSlot(c *gin.Context) {
	ctrl, _ := h.controller(c)
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}
	if err := ctrl.RemoveDraftSlot(slotID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// slotForm carries partial field edits for one draft. Pointer fields
// distinguish "not sent" from "clear".
type slotForm struct {
	Position          *string `json:"position"`
	ResponseText      *string `json:"response_text"`
	NumberOfResponses *int    `json:"number_of_responses"`
	DQ                *string `json:"dq"`
	ZScore            *string `json:"z_score"`
}

// UpdateSlot applies field edits to an open draft.
func (h *CaptureHandler) UpdateSlot(c *gin.Context) {
	ctrl, _ := h.controller(c)
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}
	ed, ok := ctrl.Slot(slotID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrUnknownSlot.Error()})
		return
	}

	var form slotForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if form.ResponseText != nil {
		ed.SetResponseText(*form.ResponseText)
	}
	if form.Position != nil {
		if err := ed.SetPosition(*form.Position); err != nil {
			fieldError(c, err)
			return
		}
	}
	if form.NumberOfResponses != nil {
		if err := ed.SetNumberOfResponses(*form.NumberOfResponses); err != nil {
			fieldError(c, err)
			return
		}
	}
	if form.DQ != nil {
		if err := ed.SetDQ(*form.DQ); err != nil {
			fieldError(c, err)
			return
		}
	}
	if form.ZScore != nil {
		if err := ed.SetZScore(*form.ZScore); err != nil {
			fieldError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, ed.Snapshot())
}

type toggleForm struct {
	Taxonomy string `json:"taxonomy"`
	Code     string `json:"code"`
}

// ToggleCode flips a taxonomy code on an open draft.
func (h *CaptureHandler) ToggleCode(c *gin.Context) {
	ctrl, _ := h.controller(c)
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}
	ed, ok := ctrl.Slot(slotID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrUnknownSlot.Error()})
		return
	}

	var form toggleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	var err error
	switch form.Taxonomy {
	case "determinants":
		err = ed.ToggleDeterminant(form.Code)
	case "content":
		err = ed.ToggleContent(form.Code)
	case "special_scores":
		err = ed.ToggleSpecialScore(form.Code)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown taxonomy"})
		return
	}
	if err != nil {
		fieldError(c, err)
		return
	}
	c.JSON(http.StatusOK, ed.Snapshot())
}

// AnalyzeSlot runs the classifier for an open draft and fills the
// suggested location and FQ on a match.
func (h *CaptureHandler) AnalyzeSlot(c *gin.Context) {
	ctrl, _ := h.controller(c)
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}
	ed, ok := ctrl.Slot(slotID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrUnknownSlot.Error()})
		return
	}

	result, err := ed.Analyze(c.Request.Context())
	if err != nil {
		var vErr *editor.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"field": vErr.Field, "error": vErr.Message})
			return
		}
		h.log.Error("Response analysis failed", zap.Error(err), zap.Uint64("slot_id", slotID))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error analyzing response. Please try again."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecordSlot validates the draft and commits it into the current image's
// recorded set.
func (h *CaptureHandler) RecordSlot(c *gin.Context) {
	ctrl, _ := h.controller(c)
	slotID, ok := parseSlotID(c)
	if !ok {
		return
	}

	entry, err := ctrl.RecordSlot(slotID)
	if err != nil {
		if errors.Is(err, session.ErrUnknownSlot) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		fieldError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recorded":     true,
		"image_number": ctrl.CurrentImage(),
		"entry_count":  ctrl.EntryCount(ctrl.CurrentImage()),
		"entry":        entry,
		"show_advance": ctrl.ShowAdvance(),
	})
}

// Advance moves the session to the next stimulus image.
func (h *CaptureHandler) Advance(c *gin.Context) {
	ctrl, _ := h.controller(c)
	if err := ctrl.AdvanceImage(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// UpdateMetadata replaces the patient details typed so far.
func (h *CaptureHandler) UpdateMetadata(c *gin.Context) {
	ctrl, _ := h.controller(c)

	var form models.PatientMetadata
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	ctrl.SetMetadata(form)
	c.JSON(http.StatusOK, gin.H{"dirty": ctrl.Dirty()})
}

// Submit finalizes the session: local validation, then delegation to the
// persistence collaborator. Failures keep every byte of entered data.
func (h *CaptureHandler) Submit(c *gin.Context) {
	ctrl, _ := h.controller(c)

	patientID, err := ctrl.Submit(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFinalImage),
			errors.Is(err, session.ErrIncompleteMetadata),
			errors.Is(err, session.ErrNoEntries):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"patient_id": patientID,
	})
}

func parseSlotID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return 0, false
	}
	return id, true
}

func fieldError(c *gin.Context, err error) {
	var vErr *editor.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"field": vErr.Field, "error": vErr.Message})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}
