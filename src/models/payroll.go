package models

import "time"

// EmploymentType selects the social-fund (DSMF) rate pair.
type EmploymentType string

const (
	EmploymentContract EmploymentType = "müqaviləli"
	EmploymentService  EmploymentType = "xidməti"
)

// Employee is the payroll input shape.
type Employee struct {
	ID             int64          `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	FIN            string         `json:"fin"`
	Position       string         `json:"position"`
	StartDate      time.Time      `json:"start_date"`
	GrossSalary    Money          `json:"gross_salary"`
	EmploymentType EmploymentType `json:"employment_type"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// TenureYears is the employment tenure as of the reference date.
func (e Employee) TenureYears(asOf time.Time) float64 {
	if e.StartDate.IsZero() || e.StartDate.After(asOf) {
		return 0
	}
	return asOf.Sub(e.StartDate).Hours() / 24 / 365.25
}

// PayrollDeductions itemizes the employee-side withholdings.
type PayrollDeductions struct {
	DSMF         Money `json:"dsmf"`
	Unemployment Money `json:"unemployment"`
	IncomeTax    Money `json:"income_tax"`
	Total        Money `json:"total"`
}

// PayrollFigures is the monthly result for one employee.
type PayrollFigures struct {
	EmployeeID   int64             `json:"employee_id"`
	Name         string            `json:"name"`
	GrossSalary  Money             `json:"gross_salary"`
	NetSalary    Money             `json:"net_salary"`
	EmployerCost Money             `json:"employer_cost"`
	Deductions   PayrollDeductions `json:"deductions"`
}

// PayrollSummary totals a payroll run.
type PayrollSummary struct {
	EmployeeCount     int   `json:"employee_count"`
	TotalGross        Money `json:"total_gross"`
	TotalNet          Money `json:"total_net"`
	TotalDeductions   Money `json:"total_deductions"`
	TotalEmployerCost Money `json:"total_employer_cost"`
}

// VacationEntitlement is the annual leave calculation for one employee.
type VacationEntitlement struct {
	EmployeeID    int64   `json:"employee_id"`
	EntitledDays  int     `json:"entitled_days"`
	RequestedDays int     `json:"requested_days"`
	RemainingDays int     `json:"remaining_days"`
	DailyRate     Money   `json:"daily_rate"`
	VacationPay   Money   `json:"vacation_pay"`
	TenureYears   float64 `json:"tenure_years"`
}

// SeveranceReason selects the compensation formula.
type SeveranceReason string

const (
	SeveranceLayoff      SeveranceReason = "layoff"
	SeveranceResignation SeveranceReason = "resignation"
	SeveranceMutual      SeveranceReason = "mutual"
)

// SeveranceCompensation is the end-of-employment payout calculation.
type SeveranceCompensation struct {
	EmployeeID         int64           `json:"employee_id"`
	Name               string          `json:"name"`
	Reason             SeveranceReason `json:"reason"`
	TenureYears        float64         `json:"tenure_years"`
	CompensationMonths float64         `json:"compensation_months"`
	MonthlySalary      Money           `json:"monthly_salary"`
	TotalCompensation  Money           `json:"total_compensation"`
}
