package handlers

import (
	"net/http"

	"github.com/username/edvhesabat/backend/src/security/validation"
	"github.com/username/edvhesabat/backend/src/services"
	"github.com/username/edvhesabat/backend/src/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: service,
	}
}

func (h *ReportHandler) HandleBalanceReport(w http.ResponseWriter, r *http.Request) {
	batchID, ok := batchParam(w, r)
	if !ok {
		return
	}

	report, err := h.reportService.BalanceReport(batchID)
	if err != nil {
		sendReportError(w, err)
		return
	}
	writeJSONWithETag(w, r, report)
}

// HandleCounterpartyStatements returns all per-VÖEN statements, or a
// single one when the 'voen' query parameter is set.
func (h *ReportHandler) HandleCounterpartyStatements(w http.ResponseWriter, r *http.Request) {
	batchID, ok := batchParam(w, r)
	if !ok {
		return
	}

	if voen := r.URL.Query().Get("voen"); voen != "" {
		if err := validation.ValidateVOEN(voen); err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		statement, err := h.reportService.CounterpartyStatement(batchID, voen)
		if err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSONWithETag(w, r, statement)
		return
	}

	statements, err := h.reportService.CounterpartyStatements(batchID)
	if err != nil {
		sendReportError(w, err)
		return
	}
	writeJSONWithETag(w, r, statements)
}
