package handlers

import (
	"net/http"
	"strings"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyzeHandler exposes the classifier directly, outside any capture
// session, and reports the loaded reference tables.
type AnalyzeHandler struct {
	log      *zap.Logger
	analyzer analyzer.Analyzer
	tables   func() []analyzer.TableInfo
}

// NewAnalyzeHandler wires the handler. tables may be nil when the
// classifier is remote and table introspection is unavailable.
func NewAnalyzeHandler(log *zap.Logger, an analyzer.Analyzer, tables func() []analyzer.TableInfo) *AnalyzeHandler {
	return &AnalyzeHandler{log: log, analyzer: an, tables: tables}
}

type analyzeForm struct {
	ResponseText string `json:"response_text"`
	ImageID      int    `json:"image_id"`
}

// Analyze classifies one response text against one image's reference data.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var form analyzeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if strings.TrimSpace(form.ResponseText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Response text cannot be empty"})
		return
	}
	if form.ImageID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image ID must be positive"})
		return
	}

	result, err := h.analyzer.AnalyzeResponse(c.Request.Context(), form.ResponseText, form.ImageID)
	if err != nil {
		h.log.Error("Analysis failed", zap.Error(err), zap.Int("image_id", form.ImageID))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error analyzing response. Please try again."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// TablesInfo reports the size of each loaded reference table.
func (h *AnalyzeHandler) TablesInfo(c *gin.Context) {
	if h.tables == nil {
		c.JSON(http.StatusOK, []analyzer.TableInfo{})
		return
	}
	c.JSON(http.StatusOK, h.tables())
}
