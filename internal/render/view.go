package render

import (
	"io"

	"github.com/ajharbinger/lunai-strategist/internal/catalog"
	"github.com/ajharbinger/lunai-strategist/internal/scoring"
)

// Display copy for the results step
const (
	Header       = "Your Strategic Constellation"
	Intro        = "Here are the top services we recommend to elevate your business to cosmic heights."
	Fallback     = "While our AI is powerful, your needs are unique. Try providing more detail, or contact us for a personalized consultation."
	NextSteps    = "Let's discuss how to tailor this strategy for you. A detailed consultation is just a click away."
	Announcement = "Your strategic constellation is ready. Here are the services tailored to your cosmic journey."
)

// Renderer writes a result view in some presentation format
type Renderer interface {
	Render(w io.Writer, view ResultView) error
}

// Recommendation is a scored service joined with its display data
type Recommendation struct {
	Key             string   `json:"key"`
	Title           string   `json:"title"`
	Icon            string   `json:"icon"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	SynergyBoost    bool     `json:"synergy_boost"`
	Justification   string   `json:"why_it_matches"`
	Benefits        []string `json:"benefits"`
	Timeline        string   `json:"estimated_timeline"`
}

// ResultView is everything the results step shows
type ResultView struct {
	Header          string           `json:"header"`
	Intro           string           `json:"intro"`
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message,omitempty"`
	Announcement    string           `json:"announcement,omitempty"`
}

// Empty reports whether there is nothing to recommend
func (v ResultView) Empty() bool {
	return len(v.Recommendations) == 0
}

// BuildView joins engine results with catalog display data. Results whose
// key is not in the catalog are skipped.
func BuildView(results []scoring.ScoredService, c *catalog.Catalog, size string) ResultView {
	view := ResultView{
		Header:          Header,
		Intro:           Intro,
		Recommendations: []Recommendation{},
	}

	for _, r := range results {
		svc, ok := c.Lookup(r.Key)
		if !ok {
			continue
		}
		view.Recommendations = append(view.Recommendations, Recommendation{
			Key:             r.Key,
			Title:           svc.Title,
			Icon:            svc.Icon,
			Score:           r.AdjustedScore,
			MatchedKeywords: r.MatchedKeywords,
			SynergyBoost:    r.HasSynergyBoost,
			Justification:   r.Justification,
			Benefits:        svc.Benefits,
			Timeline:        svc.TimelineFor(size),
		})
	}

	if view.Empty() {
		view.Message = Fallback
	} else {
		view.Announcement = Announcement
	}
	return view
}
