package parsers

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/processors"
	"github.com/username/edvhesabat/backend/src/security/validation"
	"github.com/username/edvhesabat/backend/src/utils"
)

// recordBuilder converts one resolved raw row into a canonical record, or
// reports why it must be skipped. It never returns a partially-filled
// record.
type recordBuilder struct {
	policy  *processors.RatePolicy
	columns map[string]string
}

func newRecordBuilder(policy *processors.RatePolicy, headers []string) *recordBuilder {
	return &recordBuilder{
		policy:  policy,
		columns: resolveColumns(headers),
	}
}

func (b *recordBuilder) value(row map[string]string, field string) string {
	header, ok := b.columns[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[header])
}

// build constructs the record. rowIndex feeds the fallback ID when the row
// carries no document number.
func (b *recordBuilder) build(row map[string]string, rowIndex int) (models.EDVRecord, models.SkipReason, bool) {
	if _, ok := b.columns[fieldDate]; !ok {
		return models.EDVRecord{}, models.SkipMissingField, false
	}

	date, err := utils.ParseFlexibleDate(b.value(row, fieldDate))
	if err != nil {
		return models.EDVRecord{}, models.SkipBadDate, false
	}

	rawType := b.value(row, fieldType)
	rawStatus := b.value(row, fieldStatus)
	direction := b.policy.InferDirection(rawType, rawStatus)

	ratePercent := b.policy.RateFor(date.Year(), processors.RateStandard)

	net, tax, ok := b.resolveAmounts(row, direction, ratePercent)
	if !ok {
		return models.EDVRecord{}, models.SkipBadAmount, false
	}

	series := b.value(row, fieldSeries)
	number := b.value(row, fieldNumber)
	id := fmt.Sprintf("row-%d", rowIndex)
	if number != "" {
		id = strings.TrimLeft(series+"-"+number, "-")
	}

	record := models.NewEDVRecord(
		id,
		date,
		direction,
		strings.TrimSpace(b.value(row, fieldVOEN)),
		validation.SanitizeCounterpartyName(b.value(row, fieldName)),
		series,
		number,
		net,
		tax,
		ratePercent,
		rawStatus,
	)
	return record, "", true
}

// resolveAmounts derives the (net, tax) pair from whichever monetary
// columns the source actually carries:
//
//   - net and tax both present: used as-is (gross is recomputed upstream,
//     never trusted from the source).
//   - gross only: tax backed out of the tax-inclusive amount, net is the
//     remainder (the purchase-side entry style).
//   - net only: tax added on top (the sale-side entry style).
//
// Each derived amount is rounded half-up exactly once inside the rate
// policy formulas.
func (b *recordBuilder) resolveAmounts(row map[string]string, direction models.Direction, ratePercent int) (net, tax decimal.Decimal, ok bool) {
	netStr := b.value(row, fieldNet)
	taxStr := b.value(row, fieldTax)
	grossStr := b.value(row, fieldGross)

	if netStr != "" && taxStr != "" {
		netVal, errNet := utils.ParseMoney(netStr)
		taxVal, errTax := utils.ParseMoney(taxStr)
		if errNet != nil || errTax != nil {
			return decimal.Zero, decimal.Zero, false
		}
		return netVal, taxVal, true
	}

	if netStr != "" {
		netVal, err := utils.ParseMoney(netStr)
		if err != nil {
			return decimal.Zero, decimal.Zero, false
		}
		return netVal, processors.TaxOnTop(netVal, ratePercent), true
	}

	if grossStr != "" {
		grossVal, err := utils.ParseMoney(grossStr)
		if err != nil {
			return decimal.Zero, decimal.Zero, false
		}
		taxVal := processors.TaxBackedOut(grossVal, ratePercent)
		return grossVal.Sub(taxVal), taxVal, true
	}

	return decimal.Zero, decimal.Zero, false
}
