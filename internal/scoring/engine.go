package scoring

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ajharbinger/lunai-strategist/internal/catalog"
)

// Scoring constants. These values are part of the observable behaviour and must not be tuned.
const (
	KeywordIncrement   = 10.0
	MinimumScore       = 5.0
	SynergyMultiplier  = 1.1
	MaxRecommendations = 3
	maxReasonKeywords  = 2
)

// ErrEmptyChallenges is returned by Input.Validate when there is nothing to analyze
var ErrEmptyChallenges = errors.New("please describe your challenges to get recommendations")

// Input is what the strategist wizard collects
type Input struct {
	Industry       string `json:"industry"`
	Size           string `json:"size"`
	ChallengesText string `json:"challenges"`
	GoalsText      string `json:"goals"`
}

// Validate checks the precondition for running the engine
func (in Input) Validate() error {
	if strings.TrimSpace(in.ChallengesText) == "" {
		return ErrEmptyChallenges
	}
	return nil
}

// ScoredService is one catalog entry after scoring
type ScoredService struct {
	Key             string   `json:"key"`
	RawScore        float64  `json:"raw_score"`
	AdjustedScore   float64  `json:"adjusted_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	HasSynergyBoost bool     `json:"has_synergy_boost"`
	Justification   string   `json:"justification,omitempty"`
}

// Options alter how a run is scored
type Options struct {
	// DisableSynergy skips the synergy boost step
	DisableSynergy bool
}

// ScoringEngine ranks catalog offerings against free-text business descriptions.
// It holds no state; every call is independent.
type ScoringEngine struct{}

// NewScoringEngine creates a new scoring engine instance
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// Recommend returns up to three offerings scoring above the threshold, best first
func (e *ScoringEngine) Recommend(input Input, c *catalog.Catalog) []ScoredService {
	return e.RecommendWithOptions(input, c, Options{})
}

// RecommendWithOptions is Recommend with the synergy step configurable
func (e *ScoringEngine) RecommendWithOptions(input Input, c *catalog.Catalog, opts Options) []ScoredService {
	ranked := e.Rank(input, c, opts)

	results := make([]ScoredService, 0, MaxRecommendations)
	for _, s := range ranked {
		if len(results) == MaxRecommendations {
			break
		}
		if s.AdjustedScore <= MinimumScore {
			continue
		}
		s.Justification = justify(s)
		results = append(results, s)
	}
	return results
}

// Rank scores every catalog entry and returns all of them in final rank order,
// including entries at or below the threshold. Ties keep catalog order.
func (e *ScoringEngine) Rank(input Input, c *catalog.Catalog, opts Options) []ScoredService {
	if c == nil || len(c.Services) == 0 {
		return nil
	}

	text := normalize(input.ChallengesText, input.GoalsText)

	scored := make([]ScoredService, len(c.Services))
	for i := range c.Services {
		svc := &c.Services[i]
		s := e.scoreKeywords(svc, text)

		if s.RawScore > 0 {
			s.AdjustedScore = s.RawScore * svc.IndustryMultiplier(input.Industry)
			s.AdjustedScore *= svc.SizeMultiplier(input.Size)
		}
		scored[i] = s
	}

	if !opts.DisableSynergy {
		applySynergy(scored, c)
	}

	final := make([]ScoredService, len(scored))
	copy(final, scored)
	sortByScore(final)
	return final
}

// scoreKeywords counts whole-word keyword hits across all sub-services of svc
func (e *ScoringEngine) scoreKeywords(svc *catalog.Service, text string) ScoredService {
	s := ScoredService{
		Key:             svc.Key,
		MatchedKeywords: []string{},
	}

	seen := make(map[string]bool)
	for _, sub := range svc.SubServices {
		for _, kw := range sub.Keywords {
			if !containsWord(text, kw) {
				continue
			}
			s.RawScore += KeywordIncrement
			if !seen[kw] {
				seen[kw] = true
				s.MatchedKeywords = append(s.MatchedKeywords, kw)
			}
		}
	}
	return s
}

// applySynergy boosts the provisional leader and the first later entry it lists as a synergy.
// scored is in catalog order and is updated in place.
func applySynergy(scored []ScoredService, c *catalog.Catalog) {
	if len(scored) < 2 {
		return
	}

	order := make([]int, len(scored))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].AdjustedScore > scored[order[b]].AdjustedScore
	})

	top := order[0]
	if scored[top].AdjustedScore <= 0 {
		return
	}
	anchor := &c.Services[top]

	for _, idx := range order[1:] {
		if !anchor.HasSynergy(scored[idx].Key) {
			continue
		}
		scored[top].AdjustedScore *= SynergyMultiplier
		scored[idx].AdjustedScore *= SynergyMultiplier
		scored[top].HasSynergyBoost = true
		scored[idx].HasSynergyBoost = true
		return
	}
}

func sortByScore(s []ScoredService) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].AdjustedScore > s[j].AdjustedScore
	})
}

// normalize joins challenges and goals, lower-cases, and strips commas and periods
func normalize(challenges, goals string) string {
	text := strings.ToLower(challenges + " " + goals)
	return strings.NewReplacer(",", "", ".", "").Replace(text)
}

// containsWord reports a case-insensitive whole-word occurrence of keyword in text.
// "ai" matches "ai strategy" but not "contains" or "said".
func containsWord(text, keyword string) bool {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// justify builds the explanation from the first two matched keywords in match order
func justify(s ScoredService) string {
	n := len(s.MatchedKeywords)
	if n > maxReasonKeywords {
		n = maxReasonKeywords
	}

	quoted := make([]string, n)
	for i := 0; i < n; i++ {
		quoted[i] = fmt.Sprintf("'%s'", s.MatchedKeywords[i])
	}

	why := fmt.Sprintf("Based on your focus on %s, this service is a strong match.", strings.Join(quoted, " and "))
	if s.HasSynergyBoost {
		why += " It also has excellent synergy with other recommended services."
	}
	return why
}
