package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/processors"
	"github.com/username/edvhesabat/backend/src/utils"
)

type PayrollHandler struct {
	processor *processors.PayrollProcessor
}

func NewPayrollHandler(processor *processors.PayrollProcessor) *PayrollHandler {
	return &PayrollHandler{
		processor: processor,
	}
}

type payrollRequest struct {
	Employees   []models.Employee `json:"employees"`
	WorkingDays int               `json:"working_days"`
	ActualDays  int               `json:"actual_days"`
}

type payrollResponse struct {
	Figures []models.PayrollFigures `json:"figures"`
	Summary models.PayrollSummary   `json:"summary"`
}

// HandleCalculate runs a payroll batch. WorkingDays defaults to a full
// month when omitted; ActualDays defaults to WorkingDays.
func (h *PayrollHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req payrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.L.Warn("Failed to decode payroll request", "error", err)
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Employees) == 0 {
		utils.SendJSONError(w, "no employees provided", http.StatusBadRequest)
		return
	}
	if req.WorkingDays <= 0 {
		req.WorkingDays = 22
	}
	if req.ActualDays <= 0 || req.ActualDays > req.WorkingDays {
		req.ActualDays = req.WorkingDays
	}

	figures, summary := h.processor.CalculateBatch(req.Employees, req.WorkingDays, req.ActualDays)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payrollResponse{Figures: figures, Summary: summary}); err != nil {
		logger.L.Error("Error encoding payroll response", "error", err)
	}
}

type vacationRequest struct {
	Employee      models.Employee `json:"employee"`
	RequestedDays int             `json:"requested_days"`
}

func (h *PayrollHandler) HandleVacation(w http.ResponseWriter, r *http.Request) {
	var req vacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.L.Warn("Failed to decode vacation request", "error", err)
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RequestedDays < 0 {
		utils.SendJSONError(w, "requested_days cannot be negative", http.StatusBadRequest)
		return
	}

	entitlement := h.processor.CalculateVacation(req.Employee, req.RequestedDays, time.Now())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entitlement); err != nil {
		logger.L.Error("Error encoding vacation response", "error", err)
	}
}

type severanceRequest struct {
	Employee models.Employee        `json:"employee"`
	Reason   models.SeveranceReason `json:"reason"`
}

func (h *PayrollHandler) HandleSeverance(w http.ResponseWriter, r *http.Request) {
	var req severanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.L.Warn("Failed to decode severance request", "error", err)
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	switch req.Reason {
	case models.SeveranceLayoff, models.SeveranceResignation, models.SeveranceMutual:
	default:
		utils.SendJSONError(w, "reason must be one of: layoff, resignation, mutual", http.StatusBadRequest)
		return
	}

	compensation := h.processor.CalculateSeverance(req.Employee, req.Reason, time.Now())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(compensation); err != nil {
		logger.L.Error("Error encoding severance response", "error", err)
	}
}
