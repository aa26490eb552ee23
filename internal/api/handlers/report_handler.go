package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/export"
	"github.com/andresuchdata/inventory-dashboard/internal/service"
	"github.com/andresuchdata/inventory-dashboard/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ReportHandler struct {
	service *service.DashboardService
}

func NewReportHandler(service *service.DashboardService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ListViews returns the navigation menu.
func (h *ReportHandler) ListViews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"views": h.service.Menu()})
}

// GetView renders one view as JSON.
// GET /api/v1/views/:view?period=&low=&high=&quantile=&threshold=
func (h *ReportHandler) GetView(c *gin.Context) {
	report, ok := h.render(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportView renders one view as a CSV or XLSX attachment.
// GET /api/v1/views/:view/export?format=csv|xlsx
func (h *ReportHandler) ExportView(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	report, ok := h.render(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		respondError(c, fmt.Errorf("export %s: %w", report.View, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", format.FileName(report.View)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// GetDataset reports row counts and the load time of the dataset.
func (h *ReportHandler) GetDataset(c *gin.Context) {
	info, err := h.service.DatasetInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *ReportHandler) render(c *gin.Context) (*domain.Report, bool) {
	kind, err := domain.ParseViewKind(c.Param("view"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	params, err := views.ParseParams(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	report, err := h.service.Report(c.Request.Context(), kind, params)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return report, true
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownView):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidParameter), errors.Is(err, domain.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, gin.H{"error": "failed to render report", "details": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
