package analyzer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReferenceEntry is one row of the scoring reference for a stimulus image.
type ReferenceEntry struct {
	Response string `yaml:"response"`
	Location string `yaml:"location"`
	FQ       string `yaml:"fq"`
}

type referenceImage struct {
	Image   int              `yaml:"image"`
	Entries []ReferenceEntry `yaml:"entries"`
}

type referenceFile struct {
	Images []referenceImage `yaml:"images"`
}

// TableInfo describes one loaded reference table.
type TableInfo struct {
	ImageID int `json:"image_id"`
	NumRows int `json:"num_rows"`
}

// ReferenceAnalyzer resolves responses against per-image lookup tables
// loaded from a YAML file at startup. Lookup is case and whitespace
// insensitive, with a containment fallback in either direction.
type ReferenceAnalyzer struct {
	tables map[int][]ReferenceEntry
}

// LoadReference reads and parses the reference tables file.
func LoadReference(path string) (*ReferenceAnalyzer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference file: %w", err)
	}

	var file referenceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reference YAML: %w", err)
	}

	tables := make(map[int][]ReferenceEntry, len(file.Images))
	for _, img := range file.Images {
		tables[img.Image] = append(tables[img.Image], img.Entries...)
	}
	return &ReferenceAnalyzer{tables: tables}, nil
}

// NewReference builds an analyzer directly from in-memory tables.
func NewReference(tables map[int][]ReferenceEntry) *ReferenceAnalyzer {
	return &ReferenceAnalyzer{tables: tables}
}

// AnalyzeResponse looks text up in the table for imageIndex. No table and no
// row are both reported as a no-match result.
func (a *ReferenceAnalyzer) AnalyzeResponse(ctx context.Context, responseText string, imageIndex int) (Result, error) {
	needle := normalize(responseText)
	if needle == "" {
		return Result{MatchFound: false, Message: "response text is empty"}, nil
	}

	rows := a.tables[imageIndex]

	// Exact normalized match first.
	for _, row := range rows {
		if normalize(row.Response) == needle {
			return Result{MatchFound: true, Location: row.Location, FQ: row.FQ}, nil
		}
	}

	// Containment in either direction catches "a bat" vs "bat".
	for _, row := range rows {
		ref := normalize(row.Response)
		if ref == "" {
			continue
		}
		if strings.Contains(ref, needle) || strings.Contains(needle, ref) {
			return Result{MatchFound: true, Location: row.Location, FQ: row.FQ}, nil
		}
	}

	return Result{MatchFound: false, Message: "No matching response found in reference data"}, nil
}

// TablesInfo reports the size of each loaded reference table, in image order.
func (a *ReferenceAnalyzer) TablesInfo() []TableInfo {
	info := make([]TableInfo, 0, len(a.tables))
	for id, rows := range a.tables {
		info = append(info, TableInfo{ImageID: id, NumRows: len(rows)})
	}
	sort.Slice(info, func(i, j int) bool { return info[i].ImageID < info[j].ImageID })
	return info
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
