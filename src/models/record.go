package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a record as a purchase (alış) or a sale (satış).
// Direction inference is total: a record that matches neither sale signal
// defaults to purchase, so no unknown state survives into aggregation.
type Direction string

const (
	DirectionPurchase Direction = "PURCHASE"
	DirectionSale     Direction = "SALE"
)

// EDVRecord is the unified, normalized representation of a single qaimə
// (tax invoice) row. Ingestion is responsible for populating every field
// from the source row, including the direction classification; a record is
// never mutated once it has been constructed.
type EDVRecord struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	Direction        Direction `json:"direction"`
	CounterpartyVOEN string    `json:"counterparty_voen"`
	CounterpartyName string    `json:"counterparty_name"`
	DocumentSeries   string    `json:"document_series"`
	DocumentNumber   string    `json:"document_number"`
	NetAmount        Money     `json:"net_amount"`
	TaxRate          int       `json:"tax_rate"` // whole-number percentage, e.g. 18
	TaxAmount        Money     `json:"tax_amount"`
	GrossAmount      Money     `json:"gross_amount"`
	Status           string    `json:"status"`
}

// Year and Month of the record date, the grouping keys for period reports.
func (r EDVRecord) Year() int        { return r.Date.Year() }
func (r EDVRecord) Month() time.Month { return r.Date.Month() }

// CheckAmountInvariant verifies gross == net + tax to the minor currency
// unit. A violation is a defect in the rate policy or the record
// constructor, not a recoverable runtime condition.
func (r EDVRecord) CheckAmountInvariant() error {
	expected := r.NetAmount.Add(r.TaxAmount.Decimal)
	if !r.GrossAmount.Equal(expected) {
		return fmt.Errorf("amount invariant violated for record %s: gross %s != net %s + tax %s",
			r.ID, r.GrossAmount, r.NetAmount, r.TaxAmount)
	}
	return nil
}

// NewEDVRecord builds a record from already-parsed components, recomputing
// the gross amount so the gross == net + tax invariant holds by
// construction rather than by trusting drifting source columns.
func NewEDVRecord(id string, date time.Time, direction Direction, voen, name, series, number string,
	net, tax decimal.Decimal, rate int, status string) EDVRecord {
	return EDVRecord{
		ID:               id,
		Date:             date,
		Direction:        direction,
		CounterpartyVOEN: voen,
		CounterpartyName: name,
		DocumentSeries:   series,
		DocumentNumber:   number,
		NetAmount:        NewMoney(net),
		TaxRate:          rate,
		TaxAmount:        NewMoney(tax),
		GrossAmount:      NewMoney(net.Add(tax)),
		Status:           status,
	}
}
