package processors

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/models"
)

// BalanceProcessor derives the ledger-style views of a batch: the balance
// report (per-direction turnover) and per-counterparty statements keyed by
// VÖEN. Like every other processor it is a pure fold over its input.
type BalanceProcessor struct{}

func NewBalanceProcessor() *BalanceProcessor {
	return &BalanceProcessor{}
}

// BalanceReport totals the batch per direction. Purchases are the debit
// side, sales the credit side; the net balance is credit minus debit.
func (p *BalanceProcessor) BalanceReport(records []models.EDVRecord) models.BalanceReport {
	type sums struct {
		net, tax, gross decimal.Decimal
		count           int
	}
	byDir := map[models.Direction]*sums{
		models.DirectionPurchase: {},
		models.DirectionSale:     {},
	}
	for _, r := range records {
		s := byDir[r.Direction]
		s.net = s.net.Add(r.NetAmount.Decimal)
		s.tax = s.tax.Add(r.TaxAmount.Decimal)
		s.gross = s.gross.Add(r.GrossAmount.Decimal)
		s.count++
	}

	entries := make([]models.BalanceEntry, 0, 2)
	for _, dir := range []models.Direction{models.DirectionPurchase, models.DirectionSale} {
		s := byDir[dir]
		entries = append(entries, models.BalanceEntry{
			Direction:  dir,
			NetTotal:   models.NewMoney(s.net),
			TaxTotal:   models.NewMoney(s.tax),
			GrossTotal: models.NewMoney(s.gross),
			Count:      s.count,
		})
	}

	debit := byDir[models.DirectionPurchase].gross
	credit := byDir[models.DirectionSale].gross
	return models.BalanceReport{
		Entries:     entries,
		TotalDebit:  models.NewMoney(debit),
		TotalCredit: models.NewMoney(credit),
		NetBalance:  models.NewMoney(credit.Sub(debit)),
	}
}

// CounterpartyStatements groups the batch by counterparty VÖEN and totals
// activity per direction, sorted by VÖEN for stable output. The balance is
// sales to the counterparty minus purchases from them.
func (p *BalanceProcessor) CounterpartyStatements(records []models.EDVRecord) []models.CounterpartyStatement {
	type sums struct {
		name                     string
		purchase, sale           decimal.Decimal
		purchaseCount, saleCount int
	}
	byVoen := make(map[string]*sums)

	for _, r := range records {
		voen := r.CounterpartyVOEN
		if voen == "" {
			continue
		}
		s, ok := byVoen[voen]
		if !ok {
			s = &sums{name: r.CounterpartyName}
			byVoen[voen] = s
		}
		if s.name == "" {
			s.name = r.CounterpartyName
		}
		switch r.Direction {
		case models.DirectionPurchase:
			s.purchase = s.purchase.Add(r.GrossAmount.Decimal)
			s.purchaseCount++
		case models.DirectionSale:
			s.sale = s.sale.Add(r.GrossAmount.Decimal)
			s.saleCount++
		}
	}

	voens := make([]string, 0, len(byVoen))
	for voen := range byVoen {
		voens = append(voens, voen)
	}
	sort.Strings(voens)

	statements := make([]models.CounterpartyStatement, 0, len(voens))
	for _, voen := range voens {
		s := byVoen[voen]
		statements = append(statements, models.CounterpartyStatement{
			VOEN:          voen,
			Name:          s.name,
			PurchaseTotal: models.NewMoney(s.purchase),
			SaleTotal:     models.NewMoney(s.sale),
			PurchaseCount: s.purchaseCount,
			SaleCount:     s.saleCount,
			Balance:       models.NewMoney(s.sale.Sub(s.purchase)),
		})
	}
	return statements
}

// StatementFor returns the statement for a single VÖEN, or false when the
// batch has no activity with that counterparty.
func (p *BalanceProcessor) StatementFor(records []models.EDVRecord, voen string) (models.CounterpartyStatement, bool) {
	for _, st := range p.CounterpartyStatements(records) {
		if st.VOEN == voen {
			return st, true
		}
	}
	return models.CounterpartyStatement{}, false
}
