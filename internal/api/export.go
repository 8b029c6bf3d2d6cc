package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"classboard/internal/audit"
	"classboard/internal/metrics"
)

// handleExportAudit streams an XLSX workbook with one sheet per store table.
// GET /api/v1/export/audit
func (s *Server) handleExportAudit(c *gin.Context) {
	metrics.IncHTTP("export_audit")

	filename := fmt.Sprintf("classboard_audit_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := audit.ExportXLSX(c.Request.Context(), s.db, c.Writer); err != nil {
		s.logger.Error().Err(err).Msg("audit export failed")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
