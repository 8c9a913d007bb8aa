package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
)

// ExportFormat specifies the format for exporting leads
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// maxExportRows bounds a single export
const maxExportRows = 1000

var csvHeader = []string{
	"id", "created_at", "from_name", "reply_to", "interest_area",
	"message", "relay_status", "relayed_at",
}

// LeadExportService lists and exports captured contact leads
type LeadExportService struct {
	leads repository.LeadRepository
}

// NewLeadExportService creates a new lead export service
func NewLeadExportService(leads repository.LeadRepository) *LeadExportService {
	return &LeadExportService{leads: leads}
}

// ParseExportFormat validates a requested format, defaulting to JSON
func ParseExportFormat(value string) (ExportFormat, error) {
	switch ExportFormat(value) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", apperrors.InvalidInput(fmt.Sprintf("unsupported export format: %s", value), nil)
	}
}

// GetLeads returns leads matching the filter
func (s *LeadExportService) GetLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	if filter.CreatedAfter != nil && filter.CreatedBefore != nil && filter.CreatedAfter.After(*filter.CreatedBefore) {
		return nil, apperrors.InvalidInput("created_after must not be later than created_before", nil)
	}
	return s.leads.List(ctx, filter)
}

// Stats summarizes captured leads
func (s *LeadExportService) Stats(ctx context.Context) (*models.LeadStats, error) {
	return s.leads.Stats(ctx)
}

// Export renders matching leads in the given format
func (s *LeadExportService) Export(ctx context.Context, filter models.LeadFilter, format ExportFormat) ([]byte, error) {
	if filter.Limit <= 0 || filter.Limit > maxExportRows {
		filter.Limit = maxExportRows
	}

	leads, err := s.GetLeads(ctx, filter)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return exportToJSON(leads)
	case FormatCSV:
		return exportToCSV(leads)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported export format: %s", format), nil)
	}
}

func exportToJSON(leads []models.Lead) ([]byte, error) {
	export := struct {
		ExportedAt time.Time     `json:"exported_at"`
		Count      int           `json:"count"`
		Leads      []models.Lead `json:"leads"`
	}{
		ExportedAt: time.Now().UTC(),
		Count:      len(leads),
		Leads:      leads,
	}
	return json.MarshalIndent(export, "", "  ")
}

func exportToCSV(leads []models.Lead) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, lead := range leads {
		relayedAt := ""
		if lead.RelayedAt != nil {
			relayedAt = lead.RelayedAt.Format(time.RFC3339)
		}
		record := []string{
			lead.ID.String(),
			lead.CreatedAt.Format(time.RFC3339),
			lead.FromName,
			lead.ReplyTo,
			lead.InterestArea,
			lead.Message,
			lead.RelayStatus,
			relayedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename returns the download name for an export
func ExportFilename(format ExportFormat, now time.Time) string {
	return "leads-" + strconv.FormatInt(now.Unix(), 10) + "." + string(format)
}
