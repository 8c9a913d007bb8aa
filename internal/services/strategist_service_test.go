package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/lunai-strategist/internal/catalog"
	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/render"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
	"github.com/ajharbinger/lunai-strategist/internal/scoring"
	"github.com/ajharbinger/lunai-strategist/internal/telemetry"
)

func newStrategist(t *testing.T, sessions *MockSessionRepository) (*StrategistService, *telemetry.Telemetry) {
	t.Helper()
	tel := telemetry.New()
	t.Cleanup(func() { tel.Shutdown(context.Background()) })

	var repo repository.SessionRepository
	if sessions != nil {
		repo = sessions
	}
	svc := NewStrategistService(catalog.NewStaticProvider(), repo, logger.NewNop(), tel.MeterProvider())
	return svc, tel
}

func TestRecommendationRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  RecommendationRequest
		want string
	}{
		{"missing industry", RecommendationRequest{Size: "small", Challenges: "brand"}, MsgSelectIndustryAndSize},
		{"missing size", RecommendationRequest{Industry: "tech", Challenges: "brand"}, MsgSelectIndustryAndSize},
		{"blank challenges", RecommendationRequest{Industry: "tech", Size: "small", Challenges: "   "}, MsgDescribeChallenges},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, appErr.Code)
			assert.Equal(t, tt.want, appErr.Message)
		})
	}

	assert.NoError(t, RecommendationRequest{Industry: "tech", Size: "small", Challenges: "brand"}.Validate())

	err := RecommendationRequest{Industry: "tech", Size: "small", Challenges: "\n\t", Goals: []string{"growth"}}.Validate()
	assert.ErrorIs(t, err, scoring.ErrEmptyChallenges, "goal tags alone are not enough to analyze")
}

func TestRecommendationRequest_InputJoinsGoals(t *testing.T) {
	in := RecommendationRequest{Industry: "tech", Size: "small", Challenges: "x", Goals: []string{"growth", "brand"}}.Input()
	assert.Equal(t, "growth brand", in.GoalsText)
}

func TestStrategistService_Recommend(t *testing.T) {
	sessions := &MockSessionRepository{}
	svc, tel := newStrategist(t, sessions)
	ctx := context.Background()

	rec, err := svc.Recommend(ctx, RecommendationRequest{
		Industry:   "politics",
		Size:       "large",
		Challenges: "election campaign voter outreach",
	})
	require.NoError(t, err)

	require.Len(t, rec.Results, 2)
	assert.Equal(t, "political", rec.Results[0].Key)
	assert.Equal(t, "strategy", rec.Results[1].Key)
	require.Len(t, rec.View.Recommendations, 2)
	assert.Equal(t, render.Header, rec.View.Header)

	require.Len(t, sessions.sessions, 1)
	recorded := sessions.sessions[0]
	assert.Equal(t, "politics", recorded.Industry)
	require.Len(t, recorded.Results, 2)
	assert.Equal(t, "political", recorded.Results[0].Key)
	assert.InDelta(t, rec.Results[0].AdjustedScore, recorded.Results[0].Score, 1e-9)

	_, err = svc.Recommend(ctx, RecommendationRequest{Industry: "tech", Size: "small", Challenges: "nothing relevant here"})
	require.NoError(t, err)

	snap, err := tel.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap["strategist_recommendations_total"])
	assert.Equal(t, int64(1), snap["strategist_empty_results_total"])

	stats, err := svc.SessionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.EmptySessions)
}

func TestStrategistService_EmptyResultUsesFallback(t *testing.T) {
	svc, _ := newStrategist(t, &MockSessionRepository{})

	rec, err := svc.Recommend(context.Background(), RecommendationRequest{
		Industry:   "other",
		Size:       "medium",
		Challenges: "zzz qqq",
	})
	require.NoError(t, err)
	assert.Empty(t, rec.Results)
	assert.Equal(t, render.Fallback, rec.View.Message)
}

func TestStrategistService_SessionFailureIsNotSurfaced(t *testing.T) {
	sessions := &MockSessionRepository{fail: true}
	svc, _ := newStrategist(t, sessions)

	rec, err := svc.Recommend(context.Background(), RecommendationRequest{
		Industry:   "creative",
		Size:       "small",
		Challenges: "We need a new logo and brand identity",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.Results)
	assert.Equal(t, "branding", rec.Results[0].Key)
}

func TestStrategistService_DisableSynergy(t *testing.T) {
	svc, _ := newStrategist(t, nil)

	req := RecommendationRequest{Industry: "other", Size: "unknown", Challenges: "We need a website with better UX and growth"}
	boosted, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	req.DisableSynergy = true
	plain, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, boosted.Results)
	require.NotEmpty(t, plain.Results)
	assert.True(t, boosted.Results[0].HasSynergyBoost)
	assert.False(t, plain.Results[0].HasSynergyBoost)
	assert.InDelta(t, plain.Results[0].AdjustedScore*1.1, boosted.Results[0].AdjustedScore, 1e-9)
}

func TestStrategistService_Options(t *testing.T) {
	svc, _ := newStrategist(t, nil)
	opts := svc.Options()
	assert.Len(t, opts.Industries, 7)
	assert.Len(t, opts.Sizes, 3)
	assert.NotEmpty(t, opts.Goals)

	sessions, err := svc.Sessions(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
