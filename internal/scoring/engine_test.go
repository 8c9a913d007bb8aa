package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/lunai-strategist/internal/catalog"
)

func keysOf(results []ScoredService) []string {
	keys := make([]string, len(results))
	for i, r := range results {
		keys[i] = r.Key
	}
	return keys
}

func findScored(t *testing.T, results []ScoredService, key string) ScoredService {
	t.Helper()
	for _, r := range results {
		if r.Key == key {
			return r
		}
	}
	t.Fatalf("service %s not found in results %v", key, keysOf(results))
	return ScoredService{}
}

func TestScoringEngine_BrandingScenario(t *testing.T) {
	engine := NewScoringEngine()

	results := engine.Recommend(Input{
		Industry:       "creative",
		Size:           "small",
		ChallengesText: "We need a new logo and brand identity",
	}, catalog.Default())

	require.NotEmpty(t, results)
	top := results[0]
	assert.Equal(t, "branding", top.Key)
	assert.Equal(t, []string{"brand", "identity", "logo"}, top.MatchedKeywords)

	// identity is listed under two sub-services and scores twice
	assert.Equal(t, 40.0, top.RawScore)
	assert.InDelta(t, 40*1.4*1.5*1.1, top.AdjustedScore, 1e-9)
	assert.True(t, top.HasSynergyBoost)
	assert.Equal(t,
		"Based on your focus on 'brand' and 'identity', this service is a strong match. It also has excellent synergy with other recommended services.",
		top.Justification)
}

func TestScoringEngine_PoliticalScenario(t *testing.T) {
	engine := NewScoringEngine()
	input := Input{
		Industry:       "politics",
		Size:           "large",
		ChallengesText: "election campaign voter outreach",
	}

	results := engine.Recommend(input, catalog.Default())
	require.Len(t, results, 2)
	assert.Equal(t, []string{"political", "strategy"}, keysOf(results))

	political := results[0]
	assert.Equal(t, 40.0, political.RawScore)
	assert.InDelta(t, 40*2.5*1.4*1.1, political.AdjustedScore, 1e-9)

	unboosted := findScored(t, engine.Rank(input, catalog.Default(), Options{DisableSynergy: true}), "political")
	assert.InDelta(t, 40*2.5*1.4, unboosted.AdjustedScore, 1e-9, "industry multiplier 2.5 then size 1.4")

	strategy := results[1]
	assert.InDelta(t, 10*1.2*1.5, strategy.AdjustedScore, 1e-9)
	assert.False(t, strategy.HasSynergyBoost)
	assert.Greater(t, political.AdjustedScore, 5*strategy.AdjustedScore)
}

func TestScoringEngine_NoMatches(t *testing.T) {
	engine := NewScoringEngine()

	results := engine.Recommend(Input{
		Industry:       "tech",
		Size:           "medium",
		ChallengesText: "hello world",
	}, catalog.Default())

	assert.NotNil(t, results)
	assert.Empty(t, results)

	for _, s := range engine.Rank(Input{ChallengesText: "hello world"}, catalog.Default(), Options{}) {
		assert.Zero(t, s.AdjustedScore)
		assert.False(t, s.HasSynergyBoost, "no synergy when the leader scores zero")
	}
}

func TestScoringEngine_MutualSynergyBoostsBoth(t *testing.T) {
	engine := NewScoringEngine()
	input := Input{
		Industry:       "other",
		Size:           "unknown",
		ChallengesText: "We need a website with better UX and growth",
	}

	with := engine.Recommend(input, catalog.Default())
	without := engine.RecommendWithOptions(input, catalog.Default(), Options{DisableSynergy: true})

	require.Len(t, with, 2)
	require.Len(t, without, 2)
	assert.Equal(t, []string{"digital", "strategy"}, keysOf(with))

	// website appears in three digital sub-services
	assert.Equal(t, 40.0, without[0].AdjustedScore)
	assert.Equal(t, 20.0, without[1].AdjustedScore)

	for i := range with {
		assert.True(t, with[i].HasSynergyBoost)
		assert.False(t, without[i].HasSynergyBoost)
		assert.InDelta(t, without[i].AdjustedScore*SynergyMultiplier, with[i].AdjustedScore, 1e-9)
	}
}

func TestScoringEngine_SynergyPartnerMayScoreZero(t *testing.T) {
	engine := NewScoringEngine()

	ranked := engine.Rank(Input{
		Industry:       "creative",
		Size:           "small",
		ChallengesText: "logo",
	}, catalog.Default(), Options{})

	branding := findScored(t, ranked, "branding")
	digital := findScored(t, ranked, "digital")
	content := findScored(t, ranked, "content")

	assert.True(t, branding.HasSynergyBoost)
	assert.True(t, digital.HasSynergyBoost, "first synergy partner in rank order is digital")
	assert.Zero(t, digital.AdjustedScore)
	assert.False(t, content.HasSynergyBoost, "only one pair is boosted")
}

func TestScoringEngine_WordBoundaries(t *testing.T) {
	c := &catalog.Catalog{Services: []catalog.Service{
		{Key: "ai", SubServices: []catalog.SubService{{Name: "AI", Keywords: []string{"ai"}}}},
	}}
	engine := NewScoringEngine()

	tests := []struct {
		text  string
		match bool
	}{
		{text: "the box contains nothing", match: false},
		{text: "he said so", match: false},
		{text: "captain obvious", match: false},
		{text: "AI strategy", match: true},
		{text: "our Ai roadmap", match: true},
		{text: "we need ai.", match: true},
		{text: "ai, data and more", match: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.match, containsWord(normalize(tt.text, ""), "ai"))

			ranked := engine.Rank(Input{ChallengesText: tt.text}, c, Options{})
			require.Len(t, ranked, 1)
			if tt.match {
				assert.Equal(t, KeywordIncrement, ranked[0].RawScore)
			} else {
				assert.Zero(t, ranked[0].RawScore)
			}
		})
	}
}

func TestContainsWord_MultiWordAndPunctuatedKeywords(t *testing.T) {
	text := normalize("Our go-to-market plan needs a journey map, and a11y fixes.", "")

	assert.True(t, containsWord(text, "go-to-market"))
	assert.True(t, containsWord(text, "journey map"))
	assert.True(t, containsWord(text, "a11y"))
	assert.False(t, containsWord(text, "market position"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "brand identity logo growth", normalize("Brand, Identity. Logo", "growth"))
	assert.Equal(t, "webapp ", normalize("Web.App", ""), "periods are removed, not replaced")
}

func TestScoringEngine_ThresholdExcludesWeakScores(t *testing.T) {
	c := &catalog.Catalog{Services: []catalog.Service{
		{
			Key:            "exactly-five",
			SubServices:    []catalog.SubService{{Name: "x", Keywords: []string{"alpha"}}},
			IndustryWeight: map[string]float64{"tech": 0.5},
		},
		{
			Key:            "just-above",
			SubServices:    []catalog.SubService{{Name: "y", Keywords: []string{"alpha"}}},
			IndustryWeight: map[string]float64{"tech": 0.51},
		},
	}}

	results := NewScoringEngine().Recommend(Input{Industry: "tech", ChallengesText: "alpha"}, c)
	require.Len(t, results, 1)
	assert.Equal(t, "just-above", results[0].Key)
	for _, r := range results {
		assert.Greater(t, r.AdjustedScore, MinimumScore)
	}
}

func TestScoringEngine_CardinalityCapsAtThree(t *testing.T) {
	engine := NewScoringEngine()
	input := Input{
		Industry:       "ecommerce",
		Size:           "medium",
		ChallengesText: "brand website content market campaign",
	}

	ranked := engine.Rank(input, catalog.Default(), Options{})
	above := 0
	for _, s := range ranked {
		if s.AdjustedScore > MinimumScore {
			above++
		}
	}
	require.Greater(t, above, MaxRecommendations)

	results := engine.Recommend(input, catalog.Default())
	assert.Len(t, results, MaxRecommendations)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].AdjustedScore, results[i].AdjustedScore)
	}
}

func TestScoringEngine_TiesKeepCatalogOrder(t *testing.T) {
	c := &catalog.Catalog{Services: []catalog.Service{
		{Key: "first", SubServices: []catalog.SubService{{Name: "a", Keywords: []string{"shared"}}}},
		{Key: "second", SubServices: []catalog.SubService{{Name: "b", Keywords: []string{"shared"}}}},
		{Key: "third", SubServices: []catalog.SubService{{Name: "c", Keywords: []string{"shared"}}}},
	}}

	results := NewScoringEngine().Recommend(Input{ChallengesText: "shared"}, c)
	assert.Equal(t, []string{"first", "second", "third"}, keysOf(results))
}

func TestScoringEngine_Deterministic(t *testing.T) {
	engine := NewScoringEngine()
	input := Input{
		Industry:       "tech",
		Size:           "large",
		ChallengesText: "Our website UX is dated, we want a rebrand and a content strategy with video",
		GoalsText:      "growth engagement launch",
	}

	first := engine.Recommend(input, catalog.Default())
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, engine.Recommend(input, catalog.Default())); diff != "" {
			t.Fatalf("run %d differs (-first +current):\n%s", i, diff)
		}
	}
}

func TestScoringEngine_SynergyLaw(t *testing.T) {
	engine := NewScoringEngine()
	c := catalog.Default()

	inputs := []Input{
		{Industry: "creative", Size: "small", ChallengesText: "We need a new logo and brand identity"},
		{Industry: "politics", Size: "large", ChallengesText: "election campaign voter outreach"},
		{Industry: "tech", Size: "medium", ChallengesText: "data dashboard kpi insights for our business model"},
		{Industry: "finance", Size: "small", ChallengesText: "video animation and photography", GoalsText: "content"},
		{Industry: "healthcare", Size: "large", ChallengesText: "accessibility wcag website with a cms"},
		{Industry: "", Size: "", ChallengesText: "hello world"},
	}

	for _, input := range inputs {
		t.Run(input.ChallengesText, func(t *testing.T) {
			before := engine.Rank(input, c, Options{DisableSynergy: true})
			after := engine.Rank(input, c, Options{})

			var boosted []string
			for _, s := range after {
				assert.GreaterOrEqual(t, s.AdjustedScore, 0.0)
				if s.HasSynergyBoost {
					boosted = append(boosted, s.Key)
				}
			}

			if len(boosted) == 0 {
				return
			}
			require.Len(t, boosted, 2, "at most one pair is boosted")

			anchorKey := before[0].Key
			require.Contains(t, boosted, anchorKey, "the pre-boost leader anchors the pair")
			partner := boosted[0]
			if partner == anchorKey {
				partner = boosted[1]
			}
			anchor, _ := c.Lookup(anchorKey)
			assert.True(t, anchor.HasSynergy(partner))
		})
	}
}

func TestScoringEngine_UnknownEnumsAreNeutral(t *testing.T) {
	engine := NewScoringEngine()

	results := engine.RecommendWithOptions(Input{
		Industry:       "space-mining",
		Size:           "galactic",
		ChallengesText: "logo",
	}, catalog.Default(), Options{DisableSynergy: true})

	require.Len(t, results, 1)
	assert.Equal(t, "branding", results[0].Key)
	assert.Equal(t, 10.0, results[0].AdjustedScore)
	assert.Equal(t, "Based on your focus on 'logo', this service is a strong match.", results[0].Justification)
}

func TestScoringEngine_GoalsContributeToScore(t *testing.T) {
	engine := NewScoringEngine()

	withoutGoals := findScored(t, engine.Rank(Input{ChallengesText: "our logo"}, catalog.Default(), Options{DisableSynergy: true}), "strategy")
	withGoals := findScored(t, engine.Rank(Input{ChallengesText: "our logo", GoalsText: "growth launch"}, catalog.Default(), Options{DisableSynergy: true}), "strategy")

	assert.Zero(t, withoutGoals.RawScore)
	assert.Equal(t, 20.0, withGoals.RawScore)
	assert.Equal(t, []string{"growth", "launch"}, withGoals.MatchedKeywords)
}

func TestScoringEngine_DoesNotMutateCatalog(t *testing.T) {
	c := catalog.Default()
	snapshot := catalog.Default()

	NewScoringEngine().Recommend(Input{Industry: "tech", Size: "small", ChallengesText: "website brand content video campaign"}, c)

	if diff := cmp.Diff(snapshot, c); diff != "" {
		t.Fatalf("catalog mutated (-want +got):\n%s", diff)
	}
}

func TestScoringEngine_EmptyCatalog(t *testing.T) {
	engine := NewScoringEngine()
	assert.Empty(t, engine.Recommend(Input{ChallengesText: "logo"}, &catalog.Catalog{}))
	assert.Empty(t, engine.Recommend(Input{ChallengesText: "logo"}, nil))
}

func TestInput_Validate(t *testing.T) {
	assert.ErrorIs(t, Input{ChallengesText: ""}.Validate(), ErrEmptyChallenges)
	assert.ErrorIs(t, Input{ChallengesText: "  \n\t "}.Validate(), ErrEmptyChallenges)
	assert.NoError(t, Input{ChallengesText: "logo"}.Validate())
}
