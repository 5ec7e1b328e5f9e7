package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/processors"
)

// RowsParser ingests a JSON array of raw row objects, the shape API
// callers POST directly. Values may be strings or numbers; everything is
// normalized to strings and pushed through the same record builder the CSV
// path uses.
type RowsParser struct {
	policy *processors.RatePolicy
}

func NewRowsParser(policy *processors.RatePolicy) *RowsParser {
	return &RowsParser{policy: policy}
}

func (p *RowsParser) Parse(file io.Reader) ([]models.EDVRecord, models.SkipReport, error) {
	dec := json.NewDecoder(file)
	dec.UseNumber()

	var rawRows []map[string]any
	if err := dec.Decode(&rawRows); err != nil {
		return nil, models.SkipReport{}, fmt.Errorf("failed to decode rows payload: %w", err)
	}
	if len(rawRows) == 0 {
		return nil, models.SkipReport{}, nil
	}

	// Union of keys across all rows, so a sparse first row cannot hide a
	// column from alias resolution.
	headerSet := make(map[string]struct{})
	for _, raw := range rawRows {
		for k := range raw {
			headerSet[k] = struct{}{}
		}
	}
	headers := make([]string, 0, len(headerSet))
	for k := range headerSet {
		headers = append(headers, k)
	}

	builder := newRecordBuilder(p.policy, headers)

	var records []models.EDVRecord
	var report models.SkipReport

	for i, raw := range rawRows {
		row := make(map[string]string, len(raw))
		for k, v := range raw {
			row[trimHeader(k)] = stringifyValue(v)
		}

		record, reason, ok := builder.build(row, i+1)
		if !ok {
			logger.L.Debug("Skipping row", "rowIndex", i+1, "reason", reason)
			report.Add(reason)
			continue
		}
		records = append(records, record)
		report.Loaded++
	}

	return records, report, nil
}

func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return decimal.NewFromFloat(val).String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
