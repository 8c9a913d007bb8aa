package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ajharbinger/lunai-strategist/internal/catalog"
	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/render"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
	"github.com/ajharbinger/lunai-strategist/internal/scoring"
)

// Wizard messages for incomplete input
const (
	MsgSelectIndustryAndSize = "Please select your industry and business size to proceed."
	MsgDescribeChallenges    = "Please describe your challenges to get recommendations."
)

const meterName = "github.com/ajharbinger/lunai-strategist/internal/services"

// RecommendationRequest is the strategist wizard submission
type RecommendationRequest struct {
	Industry       string   `json:"industry"`
	Size           string   `json:"size"`
	Challenges     string   `json:"challenges"`
	Goals          []string `json:"goals"`
	DisableSynergy bool     `json:"-"`
}

// Recommendation is the outcome of one strategist run
type Recommendation struct {
	Results []scoring.ScoredService `json:"results"`
	View    render.ResultView       `json:"view"`
}

// WizardOptions lists the selectable values for the wizard
type WizardOptions struct {
	Industries []catalog.Option `json:"industries"`
	Sizes      []catalog.Option `json:"sizes"`
	Goals      []catalog.Option `json:"goals"`
}

// StrategistService runs the recommendation engine for the landing-page widget
type StrategistService struct {
	provider catalog.Provider
	engine   *scoring.ScoringEngine
	sessions repository.SessionRepository
	logger   logger.Logger

	served metric.Int64Counter
	empty  metric.Int64Counter
}

// NewStrategistService creates the service. sessions may be nil, in which case runs are not recorded.
func NewStrategistService(provider catalog.Provider, sessions repository.SessionRepository, log logger.Logger, mp metric.MeterProvider) *StrategistService {
	meter := mp.Meter(meterName)
	served, err := meter.Int64Counter("strategist_recommendations_total",
		metric.WithDescription("Strategist runs that produced a result view"))
	if err != nil {
		log.Warn("Failed to register metric", "metric", "strategist_recommendations_total", "error", err)
	}
	empty, err := meter.Int64Counter("strategist_empty_results_total",
		metric.WithDescription("Strategist runs where no service passed the threshold"))
	if err != nil {
		log.Warn("Failed to register metric", "metric", "strategist_empty_results_total", "error", err)
	}

	return &StrategistService{
		provider: provider,
		engine:   scoring.NewScoringEngine(),
		sessions: sessions,
		logger:   log,
		served:   served,
		empty:    empty,
	}
}

// Options returns the wizard's selectable values
func (s *StrategistService) Options() WizardOptions {
	return WizardOptions{
		Industries: catalog.Industries,
		Sizes:      catalog.Sizes,
		Goals:      catalog.Goals,
	}
}

// Catalog returns the current service catalog
func (s *StrategistService) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	c, err := s.provider.Catalog(ctx)
	if err != nil {
		return nil, apperrors.ServiceError("failed to load service catalog", err).WithOperation("Catalog")
	}
	return c, nil
}

// Validate checks the wizard preconditions in the order the wizard asks for them
func (r RecommendationRequest) Validate() error {
	if strings.TrimSpace(r.Industry) == "" || strings.TrimSpace(r.Size) == "" {
		return apperrors.InvalidInput(MsgSelectIndustryAndSize, nil)
	}
	if err := r.Input().Validate(); err != nil {
		return apperrors.InvalidInput(MsgDescribeChallenges, err)
	}
	return nil
}

// Input converts the request to engine input. Goal tags are joined with spaces.
func (r RecommendationRequest) Input() scoring.Input {
	return scoring.Input{
		Industry:       r.Industry,
		Size:           r.Size,
		ChallengesText: r.Challenges,
		GoalsText:      strings.Join(r.Goals, " "),
	}
}

// Recommend scores the request against the catalog and records the run
func (s *StrategistService) Recommend(ctx context.Context, req RecommendationRequest) (*Recommendation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.Catalog(ctx)
	if err != nil {
		s.logger.Error("Failed to load catalog", err)
		return nil, err
	}

	results := s.engine.RecommendWithOptions(req.Input(), c, scoring.Options{DisableSynergy: req.DisableSynergy})
	view := render.BuildView(results, c, req.Size)

	attrs := metric.WithAttributes(attribute.String("industry", req.Industry), attribute.String("size", req.Size))
	s.served.Add(ctx, 1, attrs)
	if view.Empty() {
		s.empty.Add(ctx, 1, attrs)
	}

	s.logger.Info("Recommendations served",
		"industry", req.Industry,
		"size", req.Size,
		"count", len(results),
		"keys", resultKeys(results),
	)

	s.recordSession(ctx, req, results)

	return &Recommendation{Results: results, View: view}, nil
}

// recordSession stores the run. Storage failures are logged and never surfaced to the caller.
func (s *StrategistService) recordSession(ctx context.Context, req RecommendationRequest, results []scoring.ScoredService) {
	if s.sessions == nil {
		return
	}

	session := &models.AnalysisSession{
		Industry:   req.Industry,
		Size:       req.Size,
		Challenges: req.Challenges,
		Goals:      models.StringList(req.Goals),
		Results:    make(models.SessionResults, 0, len(results)),
	}
	for _, r := range results {
		session.Results = append(session.Results, models.SessionResult{
			Key:             r.Key,
			Score:           r.AdjustedScore,
			MatchedKeywords: r.MatchedKeywords,
			SynergyBoost:    r.HasSynergyBoost,
		})
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Warn("Failed to record analysis session", "error", err, "industry", req.Industry)
	}
}

// Sessions lists recorded runs, newest first
func (s *StrategistService) Sessions(ctx context.Context, limit, offset int) ([]models.AnalysisSession, error) {
	if s.sessions == nil {
		return []models.AnalysisSession{}, nil
	}
	return s.sessions.List(ctx, limit, offset)
}

// SessionStats aggregates recorded runs
func (s *StrategistService) SessionStats(ctx context.Context) (*models.SessionStats, error) {
	if s.sessions == nil {
		return models.NewSessionStats(), nil
	}
	return s.sessions.Stats(ctx)
}

func resultKeys(results []scoring.ScoredService) []string {
	keys := make([]string, len(results))
	for i, r := range results {
		keys[i] = r.Key
	}
	return keys
}
