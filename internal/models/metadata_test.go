package models

import (
	"reflect"
	"testing"
	"time"
)

func TestMetadataEmpty(t *testing.T) {
	if !(PatientMetadata{}).Empty() {
		t.Error("zero metadata should be empty")
	}
	if !(PatientMetadata{PatientName: "   "}).Empty() {
		t.Error("whitespace-only metadata should be empty")
	}
	if (PatientMetadata{TestNotes: "note"}).Empty() {
		t.Error("metadata with any field set should not be empty")
	}
}

func TestMissingRequired(t *testing.T) {
	m := PatientMetadata{
		PatientName: "John Doe",
		PatientID:   "P001",
		Gender:      "Male",
		// Age and TestDate blank.
	}
	got := m.MissingRequired()
	want := []string{"age", "test_date"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingRequired = %v, want %v", got, want)
	}

	m.Age = "28"
	m.TestDate = "2026-03-14"
	if missing := m.MissingRequired(); len(missing) != 0 {
		t.Errorf("MissingRequired = %v, want none", missing)
	}
}

func TestOptionalFieldsNotRequired(t *testing.T) {
	m := PatientMetadata{
		PatientName: "John Doe",
		PatientID:   "P001",
		Age:         "28",
		Gender:      "Male",
		TestDate:    "2026-03-14",
	}
	if missing := m.MissingRequired(); len(missing) != 0 {
		t.Errorf("examiner fields should be optional, got missing %v", missing)
	}
}

func TestToPatient(t *testing.T) {
	m := PatientMetadata{
		PatientName:  " John Doe ",
		PatientID:    "P001",
		Age:          "28",
		Gender:       "Male",
		TestDate:     "2026-03-14",
		ExaminerName: "Dr. Smith",
	}
	p, err := m.ToPatient()
	if err != nil {
		t.Fatalf("ToPatient: %v", err)
	}
	if p.Name != "John Doe" || p.PatientID != "P001" {
		t.Errorf("name/id = %q/%q", p.Name, p.PatientID)
	}
	if p.Age != 28 {
		t.Errorf("Age = %d, want 28", p.Age)
	}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !p.TestDate.Equal(want) {
		t.Errorf("TestDate = %v, want %v", p.TestDate, want)
	}
	if p.ExaminerName != "Dr. Smith" {
		t.Errorf("ExaminerName = %q", p.ExaminerName)
	}
}

func TestToPatientRejectsBadAge(t *testing.T) {
	m := PatientMetadata{Age: "twenty-eight", TestDate: "2026-03-14"}
	if _, err := m.ToPatient(); err == nil {
		t.Error("expected an error for a non-numeric age")
	}
}

func TestToPatientRejectsBadDate(t *testing.T) {
	m := PatientMetadata{Age: "28", TestDate: "14/03/2026"}
	if _, err := m.ToPatient(); err == nil {
		t.Error("expected an error for an unparseable date")
	}
}

func TestToPatientAcceptsTimestamp(t *testing.T) {
	m := PatientMetadata{Age: "28", TestDate: "2026-03-14T10:30:00Z"}
	p, err := m.ToPatient()
	if err != nil {
		t.Fatalf("ToPatient: %v", err)
	}
	if p.TestDate.Year() != 2026 {
		t.Errorf("TestDate = %v", p.TestDate)
	}
}

func TestPositionValid(t *testing.T) {
	for _, p := range []string{"^", "<", ">", "v", "."} {
		if !Position(p).Valid() {
			t.Errorf("Position(%q).Valid() = false", p)
		}
	}
	for _, p := range []string{"", "x", "^^"} {
		if Position(p).Valid() {
			t.Errorf("Position(%q).Valid() = true", p)
		}
	}
}

func TestValidDQAndZScore(t *testing.T) {
	for _, dq := range []string{"+", "o", "v", "(v/+)"} {
		if !ValidDQ(dq) {
			t.Errorf("ValidDQ(%q) = false", dq)
		}
	}
	if ValidDQ("x") {
		t.Error("ValidDQ accepted an unknown code")
	}
	for _, z := range []string{"ZW", "ZA", "ZD", "ZS"} {
		if !ValidZScore(z) {
			t.Errorf("ValidZScore(%q) = false", z)
		}
	}
	if ValidZScore("ZZ") {
		t.Error("ValidZScore accepted an unknown code")
	}
}
