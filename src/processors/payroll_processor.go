package processors

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/models"
)

// Statutory payroll rates for the governing tax years. DSMF is the state
// social protection fund; the rate pair depends on the employment type.
var (
	dsmfEmployerContract = decimal.NewFromFloat(0.22)
	dsmfEmployeeContract = decimal.NewFromFloat(0.03)
	dsmfEmployerService  = decimal.NewFromFloat(0.15)

	unemploymentRate = decimal.NewFromFloat(0.005) // both sides
	medicalRate      = decimal.NewFromFloat(0.02)  // employer only

	twelve = decimal.NewFromInt(12)
	thirty = decimal.NewFromInt(30)
)

// Annual income-tax brackets (AZN): 0 up to 8000, 14% for 8000..12000,
// 25% above. Monthly withholding is the annualized tax divided back by 12.
type taxBracket struct {
	lower decimal.Decimal
	upper decimal.Decimal // zero value means unbounded
	rate  decimal.Decimal
}

var incomeTaxBrackets = []taxBracket{
	{lower: decimal.Zero, upper: decimal.NewFromInt(8000), rate: decimal.Zero},
	{lower: decimal.NewFromInt(8000), upper: decimal.NewFromInt(12000), rate: decimal.NewFromFloat(0.14)},
	{lower: decimal.NewFromInt(12000), upper: decimal.Decimal{}, rate: decimal.NewFromFloat(0.25)},
}

// PayrollProcessor computes net/gross/employer-cost payroll figures under
// the social-fund, unemployment, medical and progressive income-tax rules.
// It is independent of the VAT core: payroll figures are never reconciled
// against EDV obligations.
type PayrollProcessor struct{}

func NewPayrollProcessor() *PayrollProcessor {
	return &PayrollProcessor{}
}

// CalculateMonthly computes one employee's monthly figures. The gross is
// prorated by actual vs scheduled working days before any deduction.
func (p *PayrollProcessor) CalculateMonthly(emp models.Employee, workingDays, actualDays int) models.PayrollFigures {
	gross := emp.GrossSalary.Decimal
	if workingDays > 0 && actualDays != workingDays {
		gross = gross.Mul(decimal.NewFromInt(int64(actualDays))).
			Div(decimal.NewFromInt(int64(workingDays)))
	}

	employerDSMF, employeeDSMF := dsmfShares(gross, emp.EmploymentType)
	unemployment := gross.Mul(unemploymentRate)
	incomeTax := monthlyIncomeTax(gross)

	totalDeduction := employeeDSMF.Add(unemployment).Add(incomeTax)
	net := gross.Sub(totalDeduction)
	employerCost := gross.Add(employerDSMF).
		Add(gross.Mul(unemploymentRate)).
		Add(gross.Mul(medicalRate))

	return models.PayrollFigures{
		EmployeeID:   emp.ID,
		Name:         emp.FullName(),
		GrossSalary:  models.NewMoney(gross.Round(2)),
		NetSalary:    models.NewMoney(net.Round(2)),
		EmployerCost: models.NewMoney(employerCost.Round(2)),
		Deductions: models.PayrollDeductions{
			DSMF:         models.NewMoney(employeeDSMF.Round(2)),
			Unemployment: models.NewMoney(unemployment.Round(2)),
			IncomeTax:    models.NewMoney(incomeTax.Round(2)),
			Total:        models.NewMoney(totalDeduction.Round(2)),
		},
	}
}

// CalculateBatch runs a payroll over several employees and totals it.
func (p *PayrollProcessor) CalculateBatch(employees []models.Employee, workingDays, actualDays int) ([]models.PayrollFigures, models.PayrollSummary) {
	figures := make([]models.PayrollFigures, 0, len(employees))
	totalGross, totalNet := decimal.Zero, decimal.Zero
	totalDeductions, totalCost := decimal.Zero, decimal.Zero

	for _, emp := range employees {
		f := p.CalculateMonthly(emp, workingDays, actualDays)
		figures = append(figures, f)
		totalGross = totalGross.Add(f.GrossSalary.Decimal)
		totalNet = totalNet.Add(f.NetSalary.Decimal)
		totalDeductions = totalDeductions.Add(f.Deductions.Total.Decimal)
		totalCost = totalCost.Add(f.EmployerCost.Decimal)
	}

	summary := models.PayrollSummary{
		EmployeeCount:     len(figures),
		TotalGross:        models.NewMoney(totalGross),
		TotalNet:          models.NewMoney(totalNet),
		TotalDeductions:   models.NewMoney(totalDeductions),
		TotalEmployerCost: models.NewMoney(totalCost),
	}
	return figures, summary
}

// CalculateVacation computes the leave entitlement and vacation pay:
// 30 base days, +2 per full 5 years of tenure, +2 more above 15 years.
func (p *PayrollProcessor) CalculateVacation(emp models.Employee, requestedDays int, asOf time.Time) models.VacationEntitlement {
	tenure := emp.TenureYears(asOf)
	entitled := 30 + int(tenure/5)*2
	if tenure > 15 {
		entitled += 2
	}

	daily := emp.GrossSalary.Div(thirty)
	pay := daily.Mul(decimal.NewFromInt(int64(requestedDays)))

	return models.VacationEntitlement{
		EmployeeID:    emp.ID,
		EntitledDays:  entitled,
		RequestedDays: requestedDays,
		RemainingDays: entitled - requestedDays,
		DailyRate:     models.NewMoney(daily.Round(2)),
		VacationPay:   models.NewMoney(pay.Round(2)),
		TenureYears:   roundTenure(tenure),
	}
}

// CalculateSeverance computes the end-of-employment compensation.
// Layoff pays two months per year of tenure capped at 24; resignation half
// a month per year; mutual agreement 1.5 months per year capped at 18.
func (p *PayrollProcessor) CalculateSeverance(emp models.Employee, reason models.SeveranceReason, asOf time.Time) models.SeveranceCompensation {
	tenure := emp.TenureYears(asOf)

	var months float64
	switch reason {
	case models.SeveranceLayoff:
		months = math.Min(tenure*2, 24)
	case models.SeveranceResignation:
		months = tenure * 0.5
	case models.SeveranceMutual:
		months = math.Min(tenure*1.5, 18)
	}

	total := emp.GrossSalary.Mul(decimal.NewFromFloat(months))

	return models.SeveranceCompensation{
		EmployeeID:         emp.ID,
		Name:               emp.FullName(),
		Reason:             reason,
		TenureYears:        roundTenure(tenure),
		CompensationMonths: math.Round(months*100) / 100,
		MonthlySalary:      emp.GrossSalary,
		TotalCompensation:  models.NewMoney(total.Round(2)),
	}
}

func dsmfShares(gross decimal.Decimal, empType models.EmploymentType) (employer, employee decimal.Decimal) {
	if empType == models.EmploymentService {
		return gross.Mul(dsmfEmployerService), decimal.Zero
	}
	return gross.Mul(dsmfEmployerContract), gross.Mul(dsmfEmployeeContract)
}

// monthlyIncomeTax annualizes the gross, walks the progressive brackets and
// divides the annual tax back into a monthly figure.
func monthlyIncomeTax(gross decimal.Decimal) decimal.Decimal {
	annual := gross.Mul(twelve)
	tax := decimal.Zero

	for _, b := range incomeTaxBrackets {
		if annual.LessThanOrEqual(b.lower) {
			break
		}
		upper := annual
		if !b.upper.IsZero() && b.upper.LessThan(annual) {
			upper = b.upper
		}
		taxable := upper.Sub(b.lower)
		if taxable.IsPositive() {
			tax = tax.Add(taxable.Mul(b.rate))
		}
	}
	return tax.Div(twelve)
}

func roundTenure(tenure float64) float64 {
	return math.Round(tenure*100) / 100
}
