package models

import "github.com/lib/pq"

// Position is the card orientation recorded for a response.
type Position string

const (
	PositionUpright  Position = "^"
	PositionLeft     Position = "<"
	PositionRight    Position = ">"
	PositionInverted Position = "v"
	PositionCardFlat Position = "."
)

// Positions lists the orientations in display order.
var Positions = []Position{PositionUpright, PositionLeft, PositionRight, PositionInverted, PositionCardFlat}

// Valid reports whether p is one of the allowed orientation symbols.
func (p Position) Valid() bool {
	for _, v := range Positions {
		if p == v {
			return true
		}
	}
	return false
}

// DevelopmentalQualities lists the allowed DQ codes.
var DevelopmentalQualities = []string{"+", "o", "v", "(v/+)"}

// OrganizationalScores lists the allowed Z-score codes.
var OrganizationalScores = []string{"ZW", "ZA", "ZD", "ZS"}

// ValidDQ reports whether dq is an allowed developmental quality code.
func ValidDQ(dq string) bool {
	for _, v := range DevelopmentalQualities {
		if dq == v {
			return true
		}
	}
	return false
}

// ValidZScore reports whether z is an allowed organizational score code.
func ValidZScore(z string) bool {
	for _, v := range OrganizationalScores {
		if z == v {
			return true
		}
	}
	return false
}

// ResponseEntry is one scored perception of a stimulus image. Location and
// FQ are filled from the reference data by the analyzer, never hand-typed.
// The wire names match what the capture form has always submitted.
type ResponseEntry struct {
	ID                uint           `gorm:"primaryKey" json:"-"`
	ImageResponseID   uint           `gorm:"index" json:"-"`
	Seq               int            `json:"-"`
	Position          string         `json:"position"`
	ResponseText      string         `json:"response_text"`
	NumberOfResponses int            `json:"number_of_responses"`
	Determinants      pq.StringArray `gorm:"type:text[]" json:"determinants"`
	Content           pq.StringArray `gorm:"type:text[]" json:"content"`
	DQ                string         `json:"dq"`
	ZScore            string         `json:"z_score"`
	SpecialScore      pq.StringArray `gorm:"type:text[]" json:"special_score"`
	Location          string         `json:"location"`
	FQ                string         `json:"fq"`
}

// ImageResponse is the ordered set of entries recorded for one stimulus.
type ImageResponse struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	PatientID   uint            `gorm:"index" json:"-"`
	ImageNumber int             `json:"image_number"`
	Entries     []ResponseEntry `gorm:"foreignKey:ImageResponseID;constraint:OnDelete:CASCADE" json:"entries"`
}
