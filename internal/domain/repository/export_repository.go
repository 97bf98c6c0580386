package repository

import (
	"github.com/diillson/bedrock-profiles-go/internal/domain/entity"
)

// ExportRepository persists audit records and run reports.
type ExportRepository interface {
	// GenerateSinkPath returns the CSV path for a run: <reportName or prefix_timestamp>.csv in dir.
	GenerateSinkPath(prefix, dir, reportName string) (string, error)
	// AppendAuditRecords appends one row per Created/Tagged outcome, writing the header only
	// when the sink did not exist yet. Returns the number of rows written.
	AppendAuditRecords(outcomes []entity.OperationOutcome, sinkPath string) (int, error)

	ExportSummaryToJSON(summary entity.BatchSummary, filename, outputDir string) (string, error)
	ExportSummaryToPDF(summary entity.BatchSummary, filename, outputDir string) (string, error)
}
