package http

import (
	"encoding/json"
	"net/http"

	"github.com/biometric-hris/attendance-processor/internal/domain/report"
	"github.com/biometric-hris/attendance-processor/internal/handler/http/response"
)

type ReportHandler interface {
	// Post-run statistics
	GetStatistics(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetStatistics handles POST /reports/statistics
func (h *reportHandlerImpl) GetStatistics(w http.ResponseWriter, r *http.Request) {
	var req report.StatisticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.GenerateStatistics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
