package processors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/models"
)

// Rate categories applied under the Azerbaijani tax code.
const (
	RateStandard = "standard" // 18% as of the governing tax years
	RateReduced  = "reduced"  // güzəştli categories
	RateZero     = "zero"     // exports, exempt supplies
)

var hundred = decimal.NewFromInt(100)

// RatePolicy maps (tax year, category) to a whole-number VAT percentage and
// owns the two inverse rate-application formulas. Rates are table-driven so
// a statutory change is a data edit, not a call-site hunt.
type RatePolicy struct {
	// year -> category -> whole-number percentage
	table map[int]map[string]int

	// Direction inference signals. A record is a sale when its raw type
	// contains any sale marker OR its raw status contains any approval
	// marker; the two checks are independent and both are kept.
	saleTypeMarkers       []string
	approvalStatusMarkers []string
}

// NewRatePolicy returns a policy pre-loaded with the statutory defaults.
func NewRatePolicy() *RatePolicy {
	return &RatePolicy{
		table: map[int]map[string]int{
			2025: {RateStandard: 18, RateReduced: 10, RateZero: 0},
			2026: {RateStandard: 18, RateReduced: 10, RateZero: 0},
		},
		saleTypeMarkers:       []string{"sww", "satış", "satis"},
		approvalStatusMarkers: []string{"təsdiq", "tesdiq"},
	}
}

type rateTableFile struct {
	Rates map[string]map[string]int `json:"rates"` // year (string) -> category -> percent
}

// LoadFromFile replaces the rate table with the contents of a JSON data
// file. The built-in defaults stay in place when the file is missing, so a
// bare checkout still computes with statutory rates.
func (p *RatePolicy) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rate table %s: %w", path, err)
	}
	var file rateTableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse rate table %s: %w", path, err)
	}
	table := make(map[int]map[string]int, len(file.Rates))
	for yearStr, categories := range file.Rates {
		var year int
		if _, err := fmt.Sscanf(yearStr, "%d", &year); err != nil {
			return fmt.Errorf("invalid year %q in rate table %s", yearStr, path)
		}
		table[year] = categories
	}
	p.table = table
	logger.L.Info("Rate table loaded", "path", path, "years", len(table))
	return nil
}

// RateFor resolves the applicable whole-number percentage for a tax year
// and category. Unknown categories resolve to the standard rate; a year
// missing from the table falls back to the latest configured year.
func (p *RatePolicy) RateFor(year int, category string) int {
	categories, ok := p.table[year]
	if !ok {
		latest := 0
		for y := range p.table {
			if y > latest {
				latest = y
			}
		}
		categories = p.table[latest]
	}
	if rate, ok := categories[category]; ok {
		return rate
	}
	return categories[RateStandard]
}

// InferDirection classifies a raw row as sale or purchase. The fallback to
// purchase is deliberate policy: ambiguous rows are treated as alış rather
// than erroring, matching how the tax-office exports behave.
func (p *RatePolicy) InferDirection(rawType, rawStatus string) models.Direction {
	lowerType := strings.ToLower(rawType)
	lowerStatus := strings.ToLower(rawStatus)
	for _, marker := range p.saleTypeMarkers {
		if strings.Contains(lowerType, marker) {
			return models.DirectionSale
		}
	}
	for _, marker := range p.approvalStatusMarkers {
		if strings.Contains(lowerStatus, marker) {
			return models.DirectionSale
		}
	}
	return models.DirectionPurchase
}

// TaxOnTop computes VAT added on top of a tax-exclusive amount:
// round(net * rate / 100, 2). Used for sale-side entries expressed as net.
// The half-up rounding is applied exactly once here; callers must not
// re-round the result.
func TaxOnTop(net decimal.Decimal, ratePercent int) decimal.Decimal {
	rate := decimal.NewFromInt(int64(ratePercent))
	return net.Mul(rate).Div(hundred).Round(2)
}

// TaxBackedOut extracts the VAT contained in a tax-inclusive amount:
// round(gross * rate / (100 + rate), 2). Used for purchase-side gross
// entries.
func TaxBackedOut(gross decimal.Decimal, ratePercent int) decimal.Decimal {
	rate := decimal.NewFromInt(int64(ratePercent))
	divisor := hundred.Add(rate)
	return gross.Mul(rate).Div(divisor).Round(2)
}

// NetFromGross is the tax-exclusive remainder of a tax-inclusive amount.
func NetFromGross(gross decimal.Decimal, ratePercent int) decimal.Decimal {
	return gross.Sub(TaxBackedOut(gross, ratePercent))
}
