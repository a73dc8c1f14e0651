package rest

import (
	"net/http"
	"strconv"

	"storefront-be/internal/logger"
	"storefront-be/internal/report"

	"go.uber.org/zap"
)

type ReportHandler struct {
	reports report.Service
}

func NewReportHandler(reports report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GET /reports/daily-revenue
func (h *ReportHandler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	results, err := h.reports.DailyRevenue(r.Context(), days)
	if err != nil {
		log.Error("daily revenue report failed", zap.Error(err))
		respondServerError(w)
		return
	}

	// Money leaves the system as fixed two-decimal strings.
	rows := make([]map[string]any, 0, len(results))
	for _, row := range results {
		rows = append(rows, map[string]any{
			"date":    row.Date,
			"orders":  row.Orders,
			"revenue": row.Revenue.StringFixed(2),
		})
	}

	respondSuccess(w, http.StatusOK, map[string]any{"dailyRevenue": rows})
}

// GET /reports/category-sales
func (h *ReportHandler) CategorySales(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	results, err := h.reports.CategorySales(r.Context())
	if err != nil {
		log.Error("category sales report failed", zap.Error(err))
		respondServerError(w)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"categorySales": results})
}
