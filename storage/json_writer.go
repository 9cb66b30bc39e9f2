package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stay-scout/models"
	"stay-scout/utils"
)

// JSONWriter writes an analysis snapshot to a JSON file
type JSONWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewJSONWriter creates a new JSONWriter
func NewJSONWriter(filePath string, logger *utils.Logger) *JSONWriter {
	return &JSONWriter{filePath: filePath, logger: logger}
}

type analysisFile struct {
	Criteria CriteriaDocument `json:"criteria"`
	Summary  AnalysisDocument `json:"analysis_summary"`
}

// WriteAnalysis writes the analysis together with the criteria it answers
func (w *JSONWriter) WriteAnalysis(analysis *models.SearchAnalysis, criteria models.SearchCriteria) error {
	if err := os.MkdirAll(filepath.Dir(w.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(analysisFile{
		Criteria: NewCriteriaDocument(criteria),
		Summary:  NewAnalysisDocument(analysis),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	if err := os.WriteFile(w.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis file: %w", err)
	}

	w.logger.Info("Analysis written to: %s", w.filePath)
	return nil
}
