package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/username/edvhesabat/backend/src/database"
	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/services"
	"github.com/username/edvhesabat/backend/src/utils"
)

type EDVHandler struct {
	reportService services.ReportService
}

func NewEDVHandler(service services.ReportService) *EDVHandler {
	return &EDVHandler{
		reportService: service,
	}
}

// batchParam pulls the mandatory batch query parameter.
func batchParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	batchID := r.URL.Query().Get("batch")
	if batchID == "" {
		utils.SendJSONError(w, "missing required 'batch' query parameter", http.StatusBadRequest)
		return "", false
	}
	return batchID, true
}

func yearMonthParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		utils.SendJSONError(w, "invalid or missing 'year' query parameter", http.StatusBadRequest)
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		utils.SendJSONError(w, "invalid or missing 'month' query parameter", http.StatusBadRequest)
		return 0, 0, false
	}
	return year, month, true
}

// sendReportError maps service errors onto HTTP statuses.
func sendReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrBatchNotFound):
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidPeriod):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.L.Error("Internal error generating report", "error", err)
		utils.SendJSONError(w, "An internal error occurred while generating the report.", http.StatusInternalServerError)
	}
}

func (h *EDVHandler) HandleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	batchID, ok := batchParam(w, r)
	if !ok {
		return
	}
	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	report, err := h.reportService.MonthlyReport(batchID, year, month)
	if err != nil {
		sendReportError(w, err)
		return
	}
	writeJSONWithETag(w, r, report)
}

func (h *EDVHandler) HandleYearlyReport(w http.ResponseWriter, r *http.Request) {
	batchID, ok := batchParam(w, r)
	if !ok {
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		utils.SendJSONError(w, "invalid or missing 'year' query parameter", http.StatusBadRequest)
		return
	}

	report, err := h.reportService.YearlyReport(batchID, year)
	if err != nil {
		sendReportError(w, err)
		return
	}
	writeJSONWithETag(w, r, report)
}

// HandlePeriodReport reconciles an explicit [start, end] date range.
// Dates use the same formats the ingestion side accepts.
func (h *EDVHandler) HandlePeriodReport(w http.ResponseWriter, r *http.Request) {
	batchID, ok := batchParam(w, r)
	if !ok {
		return
	}

	start, err := utils.ParseFlexibleDate(r.URL.Query().Get("start"))
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid 'start' date: %v", err), http.StatusBadRequest)
		return
	}
	end, err := utils.ParseFlexibleDate(r.URL.Query().Get("end"))
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid 'end' date: %v", err), http.StatusBadRequest)
		return
	}

	period, err := models.NewPeriod(start, end)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.reportService.PeriodReport(batchID, period)
	if err != nil {
		sendReportError(w, err)
		return
	}
	writeJSONWithETag(w, r, result)
}

// HandleDeclaration renders the monthly declaration as plain text.
func (h *EDVHandler) HandleDeclaration(w http.ResponseWriter, r *http.Request) {
	batchID, ok := batchParam(w, r)
	if !ok {
		return
	}
	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}
	voen := r.URL.Query().Get("voen")

	text, err := h.reportService.Declaration(batchID, year, month, voen)
	if err != nil {
		sendReportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		logger.L.Error("Error writing declaration response", "error", err)
	}
}

func (h *EDVHandler) HandleBatchInfo(w http.ResponseWriter, r *http.Request) {
	batchID, ok := batchParam(w, r)
	if !ok {
		return
	}

	info, err := h.reportService.BatchInfo(batchID)
	if err != nil {
		sendReportError(w, err)
		return
	}
	writeJSONWithETag(w, r, info)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSONWithETag encodes data as JSON with an ETag so clients polling
// the same batch can short-circuit with 304.
func writeJSONWithETag(w http.ResponseWriter, r *http.Request, data any) {
	currentETag, etagErr := utils.GenerateETag(data)

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETags := strings.Split(r.Header.Get("If-None-Match"), ",")
		for _, cETag := range clientETags {
			if strings.TrimSpace(cETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else if etagErr != nil {
		logger.L.Warn("Proceeding without ETag check due to ETag generation error", "error", etagErr)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.L.Error("Error generating JSON response", "error", err)
	}
}
