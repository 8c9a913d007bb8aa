package catalog

import "context"

// Option is a selectable value in the strategist wizard
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Industries known to the built-in catalog weights. Any other value scores with a neutral multiplier.
var Industries = []Option{
	{Value: "tech", Label: "Technology"},
	{Value: "ecommerce", Label: "E-commerce & Retail"},
	{Value: "creative", Label: "Creative & Media"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "finance", Label: "Finance"},
	{Value: "politics", Label: "Politics & Advocacy"},
	{Value: "other", Label: "Other"},
}

// Sizes are the business-size categories used for suitability and timelines
var Sizes = []Option{
	{Value: "small", Label: "Small (1-50 employees)"},
	{Value: "medium", Label: "Medium (51-500 employees)"},
	{Value: "large", Label: "Large (500+ employees)"},
}

// Goals are the checkbox tags offered alongside the free-text challenges
var Goals = []Option{
	{Value: "growth", Label: "Accelerate growth"},
	{Value: "brand", Label: "Strengthen the brand"},
	{Value: "engagement", Label: "Increase engagement"},
	{Value: "launch", Label: "Launch something new"},
	{Value: "website", Label: "Improve the website"},
	{Value: "research", Label: "Understand the market"},
	{Value: "content", Label: "Produce better content"},
}

// IsKnown reports whether value appears in opts
func IsKnown(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// StaticProvider serves the catalog compiled into the binary
type StaticProvider struct {
	catalog *Catalog
}

// NewStaticProvider creates a provider over the built-in offerings
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{catalog: Default()}
}

// Catalog returns the built-in catalog
func (p *StaticProvider) Catalog(ctx context.Context) (*Catalog, error) {
	return p.catalog, nil
}

// Default returns the six offerings shown on the landing page
func Default() *Catalog {
	return &Catalog{Services: []Service{
		{
			Key:   "branding",
			Title: "Strategic Branding Excellence",
			Icon:  "⭐",
			SubServices: []SubService{
				{Name: "Brand Strategy Development", Keywords: []string{"brand", "strategy", "framework", "identity", "reputation", "market position"}},
				{Name: "Naming & Identity", Keywords: []string{"name", "naming", "identity", "rebrand"}},
				{Name: "Visual Identity + Logo Design", Keywords: []string{"logo", "visual", "design", "look", "feel", "style guide"}},
				{Name: "Verbal Identity Systems", Keywords: []string{"voice", "tone", "messaging", "copywriting", "tagline"}},
				{Name: "Premium Packaging Design", Keywords: []string{"packaging", "product design", "unboxing"}},
			},
			Benefits: []string{
				"Establishes a strong market presence",
				"Builds customer loyalty and trust",
				"Differentiates you from competitors",
			},
			Timeline:        map[string]string{"small": "3-5 weeks", "medium": "5-8 weeks", "large": "8-12 weeks"},
			IndustryWeight:  map[string]float64{"tech": 1.2, "ecommerce": 1.5, "creative": 1.4, "healthcare": 1.1, "finance": 1.1},
			SizeSuitability: map[string]float64{"small": 1.5, "medium": 1.2, "large": 1.0},
			Synergies:       []string{"digital", "content"},
		},
		{
			Key:   "research",
			Title: "Strategic Research & Intelligence",
			Icon:  "🔍",
			SubServices: []SubService{
				{Name: "Market Research & Analysis", Keywords: []string{"market", "research", "data", "analysis", "trends"}},
				{Name: "Business Intelligence", Keywords: []string{"intelligence", "bi", "dashboard", "kpi"}},
				{Name: "Audience + Competitor Intelligence", Keywords: []string{"audience", "customer", "competitor", "insights"}},
				{Name: "Customer Journey Mapping", Keywords: []string{"journey map", "user flow", "touchpoints", "experience"}},
			},
			Benefits: []string{
				"Provides data-driven decision making",
				"Uncovers market opportunities and threats",
				"Deepens understanding of your audience",
			},
			Timeline:        map[string]string{"small": "2-4 weeks", "medium": "4-6 weeks", "large": "6-10 weeks"},
			IndustryWeight:  map[string]float64{"tech": 1.3, "finance": 1.4, "ecommerce": 1.2, "politics": 1.1, "healthcare": 1.3},
			SizeSuitability: map[string]float64{"small": 1.0, "medium": 1.3, "large": 1.5},
			Synergies:       []string{"strategy"},
		},
		{
			Key:   "strategy",
			Title: "Comprehensive Strategy Development",
			Icon:  "🧭",
			SubServices: []SubService{
				{Name: "Business Model Innovation", Keywords: []string{"business model", "revenue", "monetization", "innovation"}},
				{Name: "UI/UX Strategy", Keywords: []string{"ux", "ui", "user experience", "usability", "user interface", "engagement"}},
				{Name: "Digital & Social Media Strategy", Keywords: []string{"digital strategy", "social media", "online", "presence", "growth"}},
				{Name: "Content Strategy", Keywords: []string{"content strategy", "editorial", "calendar", "distribution"}},
				{Name: "Campaign + Launch Strategy", Keywords: []string{"launch", "campaign", "go-to-market", "promotion"}},
			},
			Benefits: []string{
				"Creates a clear roadmap for growth",
				"Aligns business goals with market needs",
				"Optimizes resource allocation",
			},
			Timeline:        map[string]string{"small": "4-6 weeks", "medium": "6-9 weeks", "large": "8-14 weeks"},
			IndustryWeight:  map[string]float64{"tech": 1.4, "ecommerce": 1.3, "creative": 1.2, "politics": 1.2, "finance": 1.3},
			SizeSuitability: map[string]float64{"small": 1.2, "medium": 1.4, "large": 1.5},
			Synergies:       []string{"branding", "research", "digital"},
		},
		{
			Key:   "political",
			Title: "Political Campaign Excellence",
			Icon:  "🏛️",
			SubServices: []SubService{
				{Name: "Political Campaign Strategy", Keywords: []string{"political", "campaign", "election", "voter", "advocacy", "win"}},
				{Name: "Marketing & Engagement Strategy", Keywords: []string{"marketing", "engagement", "outreach", "grassroots"}},
				{Name: "Social Media Asset Development", Keywords: []string{"social media", "assets", "posts", "ads"}},
				{Name: "Editorial Calendar Management", Keywords: []string{"editorial", "calendar", "schedule", "content plan"}},
			},
			Benefits: []string{
				"Maximizes voter reach and engagement",
				"Crafts a compelling and consistent message",
				"Optimizes campaign resources for impact",
			},
			Timeline:        map[string]string{"small": "Ongoing", "medium": "Ongoing", "large": "Ongoing"},
			IndustryWeight:  map[string]float64{"politics": 2.5},
			SizeSuitability: map[string]float64{"small": 1.0, "medium": 1.2, "large": 1.4},
			Synergies:       []string{"research", "content"},
		},
		{
			Key:   "digital",
			Title: "Digital Web Excellence",
			Icon:  "🌐",
			SubServices: []SubService{
				{Name: "Information Architecture", Keywords: []string{"ia", "structure", "sitemap", "navigation", "website"}},
				{Name: "UX Strategy", Keywords: []string{"ux", "user experience", "usability", "user flow", "wireframe", "website"}},
				{Name: "Responsive Development", Keywords: []string{"website", "web", "app", "digital", "responsive", "mobile"}},
				{Name: "Accessibility Compliance", Keywords: []string{"accessibility", "wcag", "a11y", "inclusive"}},
				{Name: "CMS + Back-End Integration", Keywords: []string{"cms", "backend", "database", "integration", "wordpress", "headless"}},
			},
			Benefits: []string{
				"Creates a seamless and engaging user experience",
				"Ensures your digital presence is modern and accessible",
				"Improves conversion rates and user retention",
			},
			Timeline:        map[string]string{"small": "4-8 weeks", "medium": "8-12 weeks", "large": "12-20 weeks"},
			IndustryWeight:  map[string]float64{"tech": 1.5, "ecommerce": 1.4, "finance": 1.2, "healthcare": 1.2, "creative": 1.1},
			SizeSuitability: map[string]float64{"small": 1.2, "medium": 1.2, "large": 1.2},
			Synergies:       []string{"branding", "strategy", "content"},
		},
		{
			Key:   "content",
			Title: "Content + Creative Excellence",
			Icon:  "✨",
			SubServices: []SubService{
				{Name: "Strategic Content Development", Keywords: []string{"content", "copywriting", "storytelling", "narrative"}},
				{Name: "Professional Copywriting", Keywords: []string{"copy", "writing", "sales page", "landing page"}},
				{Name: "Video + Animation", Keywords: []string{"video", "animation", "motion graphics", "explainer"}},
				{Name: "Data Visualization + Infographics", Keywords: []string{"data viz", "infographic", "charts", "graphs"}},
				{Name: "Professional Photography + Editing", Keywords: []string{"photo", "photography", "images", "editing"}},
			},
			Benefits: []string{
				"Captivates your audience with compelling stories",
				"Builds authority and thought leadership",
				"Drives organic traffic and social engagement",
			},
			Timeline:        map[string]string{"small": "2-4 weeks (retainer)", "medium": "4-6 weeks (retainer)", "large": "Ongoing"},
			IndustryWeight:  map[string]float64{"creative": 1.5, "ecommerce": 1.2, "politics": 1.1, "tech": 1.1},
			SizeSuitability: map[string]float64{"small": 1.1, "medium": 1.3, "large": 1.4},
			Synergies:       []string{"strategy", "digital"},
		},
	}}
}
