package parsers

import (
	"io"

	"github.com/username/edvhesabat/backend/src/models"
)

// Parser turns a raw source (CSV export, JSON payload) into canonical EDV
// records plus a skip report. A malformed row is dropped and counted, never
// fatal to the batch; the returned error covers source-level failures only
// (unreadable stream, no usable header).
type Parser interface {
	Parse(file io.Reader) ([]models.EDVRecord, models.SkipReport, error)
}
