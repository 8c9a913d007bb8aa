package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/services"
)

// LeadsHandler handles lead listing and export operations
type LeadsHandler struct {
	leadExportService *services.LeadExportService
}

// NewLeadsHandler creates a new leads handler
func NewLeadsHandler(exportService *services.LeadExportService) *LeadsHandler {
	return &LeadsHandler{leadExportService: exportService}
}

// GetLeads returns captured leads matching the query filter
func (h *LeadsHandler) GetLeads(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	filter, err := parseFilterFromQuery(c)
	if err != nil {
		badRequest(c, "Invalid filter parameters: "+err.Error(), err)
		return
	}

	leads, err := h.leadExportService.GetLeads(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads":     leads,
		"count":     len(leads),
		"filter":    filter,
		"timestamp": time.Now(),
	})
}

// ExportLeads downloads matching leads as JSON or CSV
func (h *LeadsHandler) ExportLeads(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	format, err := services.ParseExportFormat(strings.ToLower(c.Query("format")))
	if err != nil {
		respondError(c, err)
		return
	}

	filter, err := parseFilterFromQuery(c)
	if err != nil {
		badRequest(c, "Invalid filter parameters: "+err.Error(), err)
		return
	}

	data, err := h.leadExportService.Export(ctx, filter, format)
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := "application/json"
	if format == services.FormatCSV {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename(format, time.Now())+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// GetLeadStats returns lead counts by interest area and relay status
func (h *LeadsHandler) GetLeadStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.leadExportService.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now(),
	})
}

// parseFilterFromQuery reads interest, status, after, before, limit and offset.
// interest may repeat or be comma separated. Dates are RFC 3339 or YYYY-MM-DD.
func parseFilterFromQuery(c *gin.Context) (models.LeadFilter, error) {
	var filter models.LeadFilter

	for _, v := range c.QueryArray("interest") {
		for _, area := range strings.Split(v, ",") {
			if area = strings.TrimSpace(area); area != "" {
				filter.InterestAreas = append(filter.InterestAreas, area)
			}
		}
	}

	if status := c.Query("status"); status != "" {
		switch status {
		case models.RelayStatusPending, models.RelayStatusSent, models.RelayStatusFailed:
			filter.RelayStatus = status
		default:
			return filter, fmt.Errorf("unknown status %q", status)
		}
	}

	var err error
	if filter.CreatedAfter, err = parseDateParam(c.Query("after")); err != nil {
		return filter, fmt.Errorf("after: %w", err)
	}
	if filter.CreatedBefore, err = parseDateParam(c.Query("before")); err != nil {
		return filter, fmt.Errorf("before: %w", err)
	}

	if filter.Limit, err = parseIntParam(c.Query("limit")); err != nil {
		return filter, fmt.Errorf("limit: %w", err)
	}
	if filter.Offset, err = parseIntParam(c.Query("offset")); err != nil {
		return filter, fmt.Errorf("offset: %w", err)
	}

	return filter, nil
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	return &t, nil
}

func parseIntParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return n, nil
}
