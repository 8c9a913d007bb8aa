package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ajharbinger/lunai-strategist/internal/contact"
	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
)

// Contact form outcomes shown to the visitor
const (
	MsgContactSent   = "Your message has been successfully launched into the cosmic network! We'll respond within 24 hours."
	MsgContactFailed = "Cosmic communication interrupted. Please check your details and try again."
)

// ContactRequest is a submission plus the request metadata kept with the lead
type ContactRequest struct {
	Submission contact.Submission
	UserAgent  string
	RemoteAddr string
}

// ContactResult reports what happened to a submission
type ContactResult struct {
	LeadID  uuid.UUID `json:"lead_id"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}

// ContactService validates, stores and relays contact form submissions
type ContactService struct {
	leads   repository.LeadRepository
	relay   contact.Relay
	limiter *contact.RelayLimiter
	health  *contact.HealthMonitor
	toEmail string
	logger  logger.Logger
	now     func() time.Time

	submissions metric.Int64Counter
	deliveries  metric.Int64Counter
}

// NewContactService creates the service
func NewContactService(leads repository.LeadRepository, relay contact.Relay, limiter *contact.RelayLimiter, health *contact.HealthMonitor, toEmail string, log logger.Logger, mp metric.MeterProvider) *ContactService {
	meter := mp.Meter(meterName)
	submissions, err := meter.Int64Counter("contact_submissions_total",
		metric.WithDescription("Accepted contact form submissions"))
	if err != nil {
		log.Warn("Failed to register metric", "metric", "contact_submissions_total", "error", err)
	}
	deliveries, err := meter.Int64Counter("contact_relay_attempts_total",
		metric.WithDescription("Relay attempts by outcome"))
	if err != nil {
		log.Warn("Failed to register metric", "metric", "contact_relay_attempts_total", "error", err)
	}

	return &ContactService{
		leads:       leads,
		relay:       relay,
		limiter:     limiter,
		health:      health,
		toEmail:     toEmail,
		logger:      log,
		now:         time.Now,
		submissions: submissions,
		deliveries:  deliveries,
	}
}

// Submit validates the form, stores it as a lead and relays it. A lead that
// is stored but not delivered is reported as queued for the retry worker.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*ContactResult, error) {
	if problems := req.Submission.Validate(); len(problems) > 0 {
		return nil, apperrors.ValidationError(problems).WithOperation("SubmitContact")
	}

	claim, ok := s.limiter.Acquire()
	if !ok {
		s.logger.Warn("Contact relay rate limited", "remote_addr", req.RemoteAddr)
		return nil, apperrors.RateLimited(contact.RateLimitMessage)
	}

	msg := req.Submission.Normalize(s.toEmail, req.UserAgent, s.now().UTC())
	lead := &models.Lead{
		FromName:     msg.FromName,
		ReplyTo:      msg.ReplyTo,
		InterestArea: msg.InterestArea,
		Message:      msg.Message,
		UserAgent:    req.UserAgent,
		RemoteAddr:   req.RemoteAddr,
		RelayStatus:  models.RelayStatusPending,
		CreatedAt:    msg.SentAt,
	}

	stored := true
	if err := s.leads.Create(ctx, lead); err != nil {
		stored = false
		s.logger.Error("Failed to store lead", err, "interest_area", lead.InterestArea)
	}
	s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("interest_area", lead.InterestArea)))

	relayErr := s.deliver(ctx, msg, claim)
	if relayErr == nil {
		leadID := uuid.Nil
		if stored {
			leadID = lead.ID
			s.updateStatus(ctx, lead.ID, models.RelayStatusSent, "")
		}
		return &ContactResult{LeadID: leadID, Status: models.RelayStatusSent, Message: MsgContactSent}, nil
	}

	if !stored {
		return nil, apperrors.RelayError(MsgContactFailed, relayErr).WithOperation("SubmitContact")
	}

	status := models.RelayStatusFailed
	if errors.Is(relayErr, contact.ErrNotConfigured) {
		status = models.RelayStatusPending
	}
	s.updateStatus(ctx, lead.ID, status, relayErr.Error())

	return &ContactResult{LeadID: lead.ID, Status: status, Message: MsgContactSent}, nil
}

// deliver relays msg under claim and settles the outcome against budget and health
func (s *ContactService) deliver(ctx context.Context, msg contact.Message, claim *contact.Claim) error {
	err := s.relay.Send(ctx, msg)
	outcome := "sent"
	if err != nil {
		outcome = "failed"
		claim.Release()
		s.health.RecordFailure(msg.InterestArea, err.Error())
		s.logger.Warn("Contact relay failed", "error", err, "interest_area", msg.InterestArea)
	} else {
		claim.Commit()
		s.health.RecordSuccess()
	}
	s.deliveries.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	return err
}

func (s *ContactService) updateStatus(ctx context.Context, id uuid.UUID, status, relayErr string) {
	if err := s.leads.UpdateRelayStatus(ctx, id, status, relayErr); err != nil {
		s.logger.Error("Failed to update lead relay status", err, "lead_id", id, "status", status)
	}
}

// Redeliver relays a stored lead again, used by the retry worker
func (s *ContactService) Redeliver(ctx context.Context, lead *models.Lead) error {
	claim, ok := s.limiter.Acquire()
	if !ok {
		return apperrors.RateLimited(contact.RateLimitMessage)
	}

	msg := contact.Message{
		FromName:     lead.FromName,
		ReplyTo:      lead.ReplyTo,
		InterestArea: lead.InterestArea,
		Message:      lead.Message,
		ToEmail:      s.toEmail,
		SentAt:       lead.CreatedAt,
		UserAgent:    lead.UserAgent,
	}
	if err := s.deliver(ctx, msg, claim); err != nil {
		s.updateStatus(ctx, lead.ID, models.RelayStatusFailed, err.Error())
		return apperrors.RelayError("redelivery failed", err)
	}
	s.updateStatus(ctx, lead.ID, models.RelayStatusSent, "")
	return nil
}

// RelayHealth reports the relay's delivery health
func (s *ContactService) RelayHealth(configured bool) contact.HealthStatus {
	status := s.health.GetHealthStatus()
	status.Configured = configured
	if !configured {
		status.IsHealthy = false
		if !containsString(status.HealthIssues, notConfiguredIssue) {
			status.HealthIssues = append(status.HealthIssues, notConfiguredIssue)
		}
	}
	return status
}

const notConfiguredIssue = "Relay is not configured"

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
