package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PatientMetadata holds the examinee details exactly as typed on the capture
// form. Age and test date stay strings until submission, when they are
// coerced into their storage types.
type PatientMetadata struct {
	PatientName    string `json:"patient_name"`
	PatientID      string `json:"patient_id"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	TestDate       string `json:"test_date"`
	ExaminerName   string `json:"examiner_name"`
	TestLocation   string `json:"test_location"`
	TestDuration   string `json:"test_duration"`
	TestConditions string `json:"test_conditions"`
	TestNotes      string `json:"test_notes"`
}

// Empty reports whether every field is blank after trimming.
func (m PatientMetadata) Empty() bool {
	fields := []string{
		m.PatientName, m.PatientID, m.Age, m.Gender, m.TestDate,
		m.ExaminerName, m.TestLocation, m.TestDuration, m.TestConditions, m.TestNotes,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// MissingRequired returns the names of the required fields that are still
// blank. Name, id, age, gender and test date must all be present before a
// session can be submitted.
func (m PatientMetadata) MissingRequired() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"patient_name", m.PatientName},
		{"patient_id", m.PatientID},
		{"age", m.Age},
		{"gender", m.Gender},
		{"test_date", m.TestDate},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ToPatient coerces the metadata into a Patient record: age to an integer,
// test date to a timestamp. Responses are attached by the caller.
func (m PatientMetadata) ToPatient() (*Patient, error) {
	age, err := strconv.Atoi(strings.TrimSpace(m.Age))
	if err != nil {
		return nil, fmt.Errorf("age must be a whole number: %w", err)
	}

	dateStr := strings.TrimSpace(m.TestDate)
	testDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		// The form sends a plain date, but accept full timestamps too.
		testDate, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("test date must be YYYY-MM-DD: %w", err)
		}
	}

	return &Patient{
		PatientID:      strings.TrimSpace(m.PatientID),
		Name:           strings.TrimSpace(m.PatientName),
		Age:            age,
		Gender:         m.Gender,
		TestDate:       testDate,
		ExaminerName:   m.ExaminerName,
		TestLocation:   m.TestLocation,
		TestDuration:   m.TestDuration,
		TestConditions: m.TestConditions,
		TestNotes:      m.TestNotes,
	}, nil
}
