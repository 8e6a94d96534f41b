package services

import (
	"context"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"
	"github.com/Vineet-Sharma1927/InkSight/internal/models"
	"github.com/Vineet-Sharma1927/InkSight/internal/repository"

	"go.uber.org/zap"
)

// SubmissionService persists completed test records. Before storing, every
// entry with response text is re-run through the classifier so the stored
// location and FQ always reflect the current reference data.
type SubmissionService struct {
	log      *zap.Logger
	analyzer analyzer.Analyzer
}

// NewSubmissionService wires the service to its collaborators.
func NewSubmissionService(log *zap.Logger, an analyzer.Analyzer) *SubmissionService {
	return &SubmissionService{log: log, analyzer: an}
}

// SubmitSession re-analyzes and stores the record, returning the patient id.
func (s *SubmissionService) SubmitSession(ctx context.Context, patient *models.Patient) (string, error) {
	s.reanalyze(ctx, patient)
	return repository.SubmitPatient(ctx, patient)
}

func (s *SubmissionService) reanalyze(ctx context.Context, patient *models.Patient) {
	for ri := range patient.Responses {
		resp := &patient.Responses[ri]
		for ei := range resp.Entries {
			entry := &resp.Entries[ei]
			if entry.ResponseText == "" {
				continue
			}
			result, err := s.analyzer.AnalyzeResponse(ctx, entry.ResponseText, resp.ImageNumber)
			if err != nil {
				// Keep whatever the editor recorded; the stored
				// entry is still valid without a fresh lookup.
				s.log.Warn("Re-analysis failed during submission",
					zap.Error(err),
					zap.Int("image", resp.ImageNumber))
				continue
			}
			if result.MatchFound {
				entry.Location = result.Location
				entry.FQ = result.FQ
			}
		}
	}
}
