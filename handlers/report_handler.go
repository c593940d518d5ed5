package handlers

import (
	"net/http"

	"github.com/gspevents/event-admin/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.WeeklyReport(r.Context(), r.URL.Query().Get("week_ending"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, report, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	out, err := h.reportService.ExportCSV(r.Context(), r.URL.Query().Get("week_ending"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="weekly-report.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
