package render

import (
	"html/template"
	"io"
)

const resultsTemplate = `<div class="results-header">
    <h3>{{.View.Header}}</h3>
    <p>{{.View.Intro}}</p>
</div>
<div class="recommendation-grid">
{{- if .View.Empty}}
    <p class="form-message info show">{{.View.Message}}</p>
{{- else}}
{{- range .View.Recommendations}}
    <div class="recommendation-card" data-service="{{.Key}}">
        <div class="rec-header">
            <div class="rec-icon">{{.Icon}}</div>
            <h4 class="rec-title">{{.Title}}</h4>
        </div>
        <div class="rec-section">
            <h5 class="rec-section-title">Why It's a Match</h5>
            <p class="rec-why">{{.Justification}}</p>
        </div>
        <div class="rec-section">
            <h5 class="rec-section-title">Expected Benefits</h5>
            <ul>{{range .Benefits}}<li>{{.}}</li>{{end}}</ul>
        </div>
        <div class="rec-section">
            <h5 class="rec-section-title">Estimated Timeline</h5>
            <p class="rec-timeline">{{.Timeline}}</p>
        </div>
        <div class="rec-section">
            <h5 class="rec-section-title">Next Steps</h5>
            <p>{{$.NextSteps}}</p>
        </div>
    </div>
{{- end}}
{{- end}}
</div>
<div class="results-actions">
    <button type="button" class="cta-btn" id="strategistContactBtn">Schedule Consultation</button>
    <button type="button" class="secondary-btn" id="strategistPrintBtn">Print Recommendations</button>
</div>
`

// HTMLRenderer renders the results fragment the landing page injects
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the results template
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: template.Must(template.New("results").Parse(resultsTemplate))}
}

// Render writes the HTML fragment for view
func (r *HTMLRenderer) Render(w io.Writer, view ResultView) error {
	return r.tmpl.Execute(w, struct {
		View      ResultView
		NextSteps string
	}{View: view, NextSteps: NextSteps})
}
