package parsers

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/processors"
)

// QaimeCSVParser reads the tax-authority qaimə spreadsheet exported as CSV.
// Column positions vary between export variants, so fields are located by
// header name through the alias table rather than by index.
type QaimeCSVParser struct {
	policy *processors.RatePolicy
}

func NewQaimeCSVParser(policy *processors.RatePolicy) *QaimeCSVParser {
	return &QaimeCSVParser{policy: policy}
}

func (p *QaimeCSVParser) Parse(file io.Reader) ([]models.EDVRecord, models.SkipReport, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, models.SkipReport{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	builder := newRecordBuilder(p.policy, headers)

	var records []models.EDVRecord
	var report models.SkipReport

	rowIndex := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken line drops that row only, like any
			// other malformed row.
			report.Add(models.SkipMissingField)
			continue
		}
		rowIndex++

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[trimHeader(h)] = fields[i]
			}
		}

		record, reason, ok := builder.build(row, rowIndex)
		if !ok {
			logger.L.Debug("Skipping row", "rowIndex", rowIndex, "reason", reason)
			report.Add(reason)
			continue
		}
		records = append(records, record)
		report.Loaded++
	}

	return records, report, nil
}
