package processors

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/edvhesabat/backend/src/models"
)

func testEmployee(id int64, gross string, empType models.EmploymentType) models.Employee {
	return models.Employee{
		ID:             id,
		FirstName:      "Aysel",
		LastName:       "Məmmədova",
		FIN:            "1ABC234",
		Position:       "mühasib",
		StartDate:      time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		GrossSalary:    models.NewMoney(decimal.RequireFromString(gross)),
		EmploymentType: empType,
	}
}

func TestCalculateMonthly_ContractEmployee(t *testing.T) {
	proc := NewPayrollProcessor()

	// Gross 1000: DSMF 3% = 30, unemployment 0.5% = 5, income tax on
	// annualized 12000 = 14% of 4000 / 12 = 46.67.
	f := proc.CalculateMonthly(testEmployee(1, "1000", models.EmploymentContract), 22, 22)

	if f.Deductions.DSMF.StringFixed(2) != "30.00" {
		t.Errorf("employee DSMF = %s, want 30.00", f.Deductions.DSMF.StringFixed(2))
	}
	if f.Deductions.Unemployment.StringFixed(2) != "5.00" {
		t.Errorf("unemployment = %s, want 5.00", f.Deductions.Unemployment.StringFixed(2))
	}
	if f.Deductions.IncomeTax.StringFixed(2) != "46.67" {
		t.Errorf("income tax = %s, want 46.67", f.Deductions.IncomeTax.StringFixed(2))
	}
	if f.Deductions.Total.StringFixed(2) != "81.67" {
		t.Errorf("total deductions = %s, want 81.67", f.Deductions.Total.StringFixed(2))
	}
	if f.NetSalary.StringFixed(2) != "918.33" {
		t.Errorf("net salary = %s, want 918.33", f.NetSalary.StringFixed(2))
	}
	// Employer: gross + 22% DSMF + 0.5% unemployment + 2% medical.
	if f.EmployerCost.StringFixed(2) != "1245.00" {
		t.Errorf("employer cost = %s, want 1245.00", f.EmployerCost.StringFixed(2))
	}
}

func TestCalculateMonthly_ServiceEmployee(t *testing.T) {
	proc := NewPayrollProcessor()

	// Xidməti contracts carry no employee DSMF and a 15% employer rate.
	f := proc.CalculateMonthly(testEmployee(2, "500", models.EmploymentService), 22, 22)

	if !f.Deductions.DSMF.IsZero() {
		t.Errorf("employee DSMF = %s, want 0", f.Deductions.DSMF.StringFixed(2))
	}
	if f.Deductions.Unemployment.StringFixed(2) != "2.50" {
		t.Errorf("unemployment = %s, want 2.50", f.Deductions.Unemployment.StringFixed(2))
	}
	// Annualized 6000 stays inside the tax-free bracket.
	if !f.Deductions.IncomeTax.IsZero() {
		t.Errorf("income tax = %s, want 0", f.Deductions.IncomeTax.StringFixed(2))
	}
	if f.NetSalary.StringFixed(2) != "497.50" {
		t.Errorf("net salary = %s, want 497.50", f.NetSalary.StringFixed(2))
	}
	// 500 + 75 DSMF + 2.50 unemployment + 10 medical.
	if f.EmployerCost.StringFixed(2) != "587.50" {
		t.Errorf("employer cost = %s, want 587.50", f.EmployerCost.StringFixed(2))
	}
}

func TestCalculateMonthly_TopBracket(t *testing.T) {
	proc := NewPayrollProcessor()

	// Gross 2000: annual 24000. Tax = 14% of 4000 + 25% of 12000 = 3560,
	// monthly 296.67.
	f := proc.CalculateMonthly(testEmployee(3, "2000", models.EmploymentContract), 22, 22)

	if f.Deductions.IncomeTax.StringFixed(2) != "296.67" {
		t.Errorf("income tax = %s, want 296.67", f.Deductions.IncomeTax.StringFixed(2))
	}
	if f.NetSalary.StringFixed(2) != "1633.33" {
		t.Errorf("net salary = %s, want 1633.33", f.NetSalary.StringFixed(2))
	}
}

func TestCalculateMonthly_ProratesByActualDays(t *testing.T) {
	proc := NewPayrollProcessor()

	f := proc.CalculateMonthly(testEmployee(4, "1000", models.EmploymentContract), 20, 10)

	if f.GrossSalary.StringFixed(2) != "500.00" {
		t.Errorf("prorated gross = %s, want 500.00", f.GrossSalary.StringFixed(2))
	}
	if f.Deductions.DSMF.StringFixed(2) != "15.00" {
		t.Errorf("DSMF on prorated gross = %s, want 15.00", f.Deductions.DSMF.StringFixed(2))
	}
}

func TestCalculateBatch_SummaryTotals(t *testing.T) {
	proc := NewPayrollProcessor()
	employees := []models.Employee{
		testEmployee(1, "1000", models.EmploymentContract),
		testEmployee(2, "500", models.EmploymentService),
		testEmployee(3, "2000", models.EmploymentContract),
	}

	figures, summary := proc.CalculateBatch(employees, 22, 22)

	if len(figures) != 3 {
		t.Fatalf("figures = %d, want 3", len(figures))
	}
	if summary.EmployeeCount != 3 {
		t.Errorf("employee count = %d, want 3", summary.EmployeeCount)
	}
	if summary.TotalGross.StringFixed(2) != "3500.00" {
		t.Errorf("total gross = %s, want 3500.00", summary.TotalGross.StringFixed(2))
	}

	net := decimal.Zero
	for _, f := range figures {
		net = net.Add(f.NetSalary.Decimal)
	}
	if !summary.TotalNet.Equal(net) {
		t.Errorf("summary net %s != sum of figures %s", summary.TotalNet, net)
	}
}

func TestCalculateVacation(t *testing.T) {
	proc := NewPayrollProcessor()
	asOf := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	emp := testEmployee(1, "900", models.EmploymentContract)
	emp.StartDate = time.Date(2014, time.August, 1, 0, 0, 0, 0, time.UTC) // ~12 years

	v := proc.CalculateVacation(emp, 14, asOf)

	// 30 base days + 2 per full 5 years of tenure.
	if v.EntitledDays != 34 {
		t.Errorf("entitled days = %d, want 34", v.EntitledDays)
	}
	if v.RemainingDays != 20 {
		t.Errorf("remaining days = %d, want 20", v.RemainingDays)
	}
	if v.DailyRate.StringFixed(2) != "30.00" {
		t.Errorf("daily rate = %s, want 30.00", v.DailyRate.StringFixed(2))
	}
	if v.VacationPay.StringFixed(2) != "420.00" {
		t.Errorf("vacation pay = %s, want 420.00", v.VacationPay.StringFixed(2))
	}
}

func TestCalculateVacation_LongTenureBonus(t *testing.T) {
	proc := NewPayrollProcessor()
	asOf := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	emp := testEmployee(1, "900", models.EmploymentContract)
	emp.StartDate = time.Date(2005, time.January, 10, 0, 0, 0, 0, time.UTC) // ~21 years

	v := proc.CalculateVacation(emp, 0, asOf)

	// 30 + 4*2 for four full 5-year blocks + 2 above 15 years.
	if v.EntitledDays != 40 {
		t.Errorf("entitled days = %d, want 40", v.EntitledDays)
	}
}

func TestCalculateSeverance(t *testing.T) {
	proc := NewPayrollProcessor()
	asOf := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	emp := testEmployee(1, "1000", models.EmploymentContract)
	emp.StartDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC) // ~26.7 years

	t.Run("layoff caps at 24 months", func(t *testing.T) {
		s := proc.CalculateSeverance(emp, models.SeveranceLayoff, asOf)
		if s.CompensationMonths != 24 {
			t.Errorf("months = %v, want 24", s.CompensationMonths)
		}
		if s.TotalCompensation.StringFixed(2) != "24000.00" {
			t.Errorf("total = %s, want 24000.00", s.TotalCompensation.StringFixed(2))
		}
	})

	t.Run("mutual caps at 18 months", func(t *testing.T) {
		s := proc.CalculateSeverance(emp, models.SeveranceMutual, asOf)
		if s.CompensationMonths != 18 {
			t.Errorf("months = %v, want 18", s.CompensationMonths)
		}
	})

	t.Run("resignation pays half a month per year", func(t *testing.T) {
		s := proc.CalculateSeverance(emp, models.SeveranceResignation, asOf)
		wantMonths := emp.TenureYears(asOf) * 0.5
		if math.Abs(s.CompensationMonths-wantMonths) > 0.01 {
			t.Errorf("months = %v, want about %v", s.CompensationMonths, wantMonths)
		}
	})
}

func TestTenureYears_FutureStartIsZero(t *testing.T) {
	emp := testEmployee(1, "1000", models.EmploymentContract)
	emp.StartDate = time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	if got := emp.TenureYears(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("tenure for future start = %v, want 0", got)
	}
}
