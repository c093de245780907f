package handlers

import (
	"net/http"

	"resto-pos/internal/pos"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reporter *pos.Reporter
}

func NewReportHandler(reporter *pos.Reporter) *ReportHandler {
	return &ReportHandler{reporter: reporter}
}

// --- GET: /api/reports?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD ---
// Both dates are optional; leaving them out reports over everything.
func (h *ReportHandler) Financial(c *gin.Context) {
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	report, err := h.reporter.Generate(start, end)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
