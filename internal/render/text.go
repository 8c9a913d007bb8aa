package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// TextRenderer writes results for a terminal
type TextRenderer struct {
	// Explain adds score and matched keywords under each recommendation
	Explain bool

	title   *color.Color
	heading *color.Color
	muted   *color.Color
	accent  *color.Color
}

// NewTextRenderer creates a terminal renderer
func NewTextRenderer(explain bool) *TextRenderer {
	return &TextRenderer{
		Explain: explain,
		title:   color.New(color.FgHiMagenta, color.Bold),
		heading: color.New(color.FgCyan, color.Bold),
		muted:   color.New(color.FgHiBlack),
		accent:  color.New(color.FgYellow),
	}
}

// Render writes view as plain, optionally colored, text
func (r *TextRenderer) Render(w io.Writer, view ResultView) error {
	if _, err := r.title.Fprintln(w, view.Header); err != nil {
		return err
	}
	fmt.Fprintln(w, view.Intro)
	fmt.Fprintln(w)

	if view.Empty() {
		_, err := r.accent.Fprintln(w, view.Message)
		return err
	}

	for i, rec := range view.Recommendations {
		r.heading.Fprintf(w, "%d. %s %s\n", i+1, rec.Icon, rec.Title)
		fmt.Fprintf(w, "   %s\n", rec.Justification)
		if len(rec.Benefits) > 0 {
			fmt.Fprintln(w, "   Expected benefits:")
			for _, b := range rec.Benefits {
				fmt.Fprintf(w, "     - %s\n", b)
			}
		}
		if rec.Timeline != "" {
			fmt.Fprintf(w, "   Estimated timeline: %s\n", rec.Timeline)
		}
		if r.Explain {
			boost := ""
			if rec.SynergyBoost {
				boost = " (synergy x1.1)"
			}
			r.muted.Fprintf(w, "   score %.2f%s, matched: %s\n", rec.Score, boost, strings.Join(rec.MatchedKeywords, ", "))
		}
		fmt.Fprintln(w)
	}
	return nil
}
