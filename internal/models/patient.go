package models

import "time"

// Patient is a completed test record: the examinee's details plus one
// ImageResponse per stimulus visited, in image order.
type Patient struct {
	ID             uint            `gorm:"primaryKey" json:"-"`
	PatientID      string          `gorm:"uniqueIndex" json:"patient_id"`
	Name           string          `json:"name"`
	Age            int             `json:"age"`
	Gender         string          `json:"gender"`
	TestDate       time.Time       `json:"test_date"`
	ExaminerName   string          `json:"examiner_name"`
	TestLocation   string          `json:"test_location"`
	TestDuration   string          `json:"test_duration"`
	TestConditions string          `json:"test_conditions"`
	TestNotes      string          `json:"test_notes"`
	CreatedAt      time.Time       `json:"created_at"`
	Responses      []ImageResponse `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"responses"`
}

// PatientSummary is the projection used by the patient list view.
type PatientSummary struct {
	PatientID string    `json:"patient_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	TestDate  time.Time `json:"test_date"`
	CreatedAt time.Time `json:"created_at"`
}
