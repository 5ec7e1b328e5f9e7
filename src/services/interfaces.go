package services

import (
	"errors"
	"io"

	"github.com/username/edvhesabat/backend/src/models"
)

var (
	ErrParsingFailed    = errors.New("parsing failed")
	ErrProcessingFailed = errors.New("processing failed")
)

// UploadResult is what a batch load reports back to the caller:
// the stored batch ID plus "N loaded, M skipped" accounting.
type UploadResult struct {
	BatchID    string            `json:"batch_id"`
	Source     string            `json:"source"`
	SkipReport models.SkipReport `json:"skip_report"`
}

// ReportService is the reporting session over stored batches of canonical
// records. Every report call recomputes from the immutable batch, so
// results are idempotent and repeatable.
type ReportService interface {
	ProcessUpload(fileReader io.Reader, source string) (*UploadResult, error)

	MonthlyReport(batchID string, year, month int) (*models.MonthlyReport, error)
	YearlyReport(batchID string, year int) (*models.YearlyReport, error)
	PeriodReport(batchID string, period models.Period) (*models.ReconciliationResult, error)
	Declaration(batchID string, year, month int, voen string) (string, error)

	BalanceReport(batchID string) (*models.BalanceReport, error)
	CounterpartyStatements(batchID string) ([]models.CounterpartyStatement, error)
	CounterpartyStatement(batchID, voen string) (*models.CounterpartyStatement, error)

	BatchInfo(batchID string) (*models.BatchInfo, error)
}
