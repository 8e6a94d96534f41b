package repository

import (
	"context"
	"fmt"

	"github.com/Vineet-Sharma1927/InkSight/internal/database"
	"github.com/Vineet-Sharma1927/InkSight/internal/models"

	"gorm.io/gorm"
)

// SubmitPatient stores a completed test record and returns the patient id.
// The patient_id column is unique; re-submitting an existing id fails.
func SubmitPatient(ctx context.Context, patient *models.Patient) (string, error) {
	if err := database.DB.WithContext(ctx).Create(patient).Error; err != nil {
		return "", fmt.Errorf("insert patient: %w", err)
	}
	return patient.PatientID, nil
}

// GetPatientByID loads a full record, responses and entries included, by
// the external patient id.
func GetPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	err := database.DB.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_responses.image_number ASC")
		}).
		Preload("Responses.Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("response_entries.seq ASC")
		}).
		First(&patient, "patient_id = ?", patientID).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// ListPatients returns the summary projection for the patient list view,
// newest first.
func ListPatients(ctx context.Context) ([]models.PatientSummary, error) {
	var summaries []models.PatientSummary
	err := database.DB.WithContext(ctx).
		Model(&models.Patient{}).
		Select("patient_id", "name", "age", "gender", "test_date", "created_at").
		Order("created_at DESC").
		Scan(&summaries).Error
	return summaries, err
}

// UpdatePatientResponses replaces every response set of an existing record.
func UpdatePatientResponses(ctx context.Context, patientID string, responses []models.ImageResponse) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, "patient_id = ?", patientID).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&models.ImageResponse{}).Error; err != nil {
			return err
		}
		for i := range responses {
			responses[i].ID = 0
			responses[i].PatientID = patient.ID
			if err := tx.Create(&responses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
