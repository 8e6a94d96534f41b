package handlers

import (
	"errors"
	"net/http"

	"github.com/Vineet-Sharma1927/InkSight/internal/models"
	"github.com/Vineet-Sharma1927/InkSight/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PatientsHandler serves the stored-record read endpoints for the list and
// detail views.
type PatientsHandler struct {
	log *zap.Logger
}

func NewPatientsHandler(log *zap.Logger) *PatientsHandler {
	return &PatientsHandler{log: log}
}

// List returns all patients as summaries, newest first.
func (h *PatientsHandler) List(c *gin.Context) {
	patients, err := repository.ListPatients(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list patients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load patients"})
		return
	}
	c.JSON(http.StatusOK, patients)
}

// Get returns a full record by external patient id.
func (h *PatientsHandler) Get(c *gin.Context) {
	patientID := c.Param("id")
	patient, err := repository.GetPatientByID(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		h.log.Error("Failed to load patient", zap.Error(err), zap.String("patient_id", patientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load patient"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// UpdateResponses replaces every response set of a stored record.
func (h *PatientsHandler) UpdateResponses(c *gin.Context) {
	patientID := c.Param("id")

	var responses []models.ImageResponse
	if err := c.ShouldBindJSON(&responses); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if err := repository.UpdatePatientResponses(c.Request.Context(), patientID, responses); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		h.log.Error("Failed to update responses", zap.Error(err), zap.String("patient_id", patientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update responses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
