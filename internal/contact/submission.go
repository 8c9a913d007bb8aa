package contact

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Validation messages shown under the contact form
const (
	MsgNameTooShort    = "Name must be at least 2 characters"
	MsgInvalidEmail    = "Please enter a valid email address"
	MsgMissingInterest = "Please select your area of interest"
	MsgMessageTooShort = "Message must be at least 10 characters long"
	MsgSpamDetected    = "Spam detected"
)

const (
	minNameLength    = 2
	minMessageLength = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is the raw contact form as posted by the landing page
type Submission struct {
	FromName     string `json:"from_name"`
	ReplyTo      string `json:"reply_to"`
	InterestArea string `json:"interest_area"`
	Message      string `json:"message"`
	// Honeypot is a hidden field; people leave it empty, bots fill it in
	Honeypot string `json:"honeypot"`
}

// Validate returns every failed check in form order. An empty slice means the submission is acceptable.
func (s Submission) Validate() []string {
	problems := []string{}

	if len([]rune(strings.TrimSpace(s.FromName))) < minNameLength {
		problems = append(problems, MsgNameTooShort)
	}
	if !emailPattern.MatchString(s.ReplyTo) {
		problems = append(problems, MsgInvalidEmail)
	}
	if s.InterestArea == "" {
		problems = append(problems, MsgMissingInterest)
	}
	if len([]rune(strings.TrimSpace(s.Message))) < minMessageLength {
		problems = append(problems, MsgMessageTooShort)
	}
	if strings.TrimSpace(s.Honeypot) != "" {
		problems = append(problems, MsgSpamDetected)
	}

	return problems
}

// Message is a normalized submission ready to relay
type Message struct {
	FromName     string
	ReplyTo      string
	InterestArea string
	Message      string
	ToEmail      string
	SentAt       time.Time
	UserAgent    string
}

// Normalize trims the fields, lower-cases the reply address and strips any markup from the message
func (s Submission) Normalize(toEmail, userAgent string, now time.Time) Message {
	return Message{
		FromName:     strings.TrimSpace(s.FromName),
		ReplyTo:      strings.ToLower(strings.TrimSpace(s.ReplyTo)),
		InterestArea: s.InterestArea,
		Message:      StripHTML(strings.TrimSpace(s.Message)),
		ToEmail:      toEmail,
		SentAt:       now,
		UserAgent:    userAgent,
	}
}

// StripHTML reduces message markup to its text content. Input without tags is returned unchanged.
func StripHTML(input string) string {
	if !strings.ContainsAny(input, "<>&") {
		return input
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return input
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}
