package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validSubmission() Submission {
	return Submission{
		FromName:     "  Ada Lovelace ",
		ReplyTo:      " Ada@Example.COM ",
		InterestArea: "branding",
		Message:      "We would like a full rebrand this spring.",
	}
}

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		want   []string
	}{
		{"valid", func(*Submission) {}, []string{}},
		{"short name", func(s *Submission) { s.FromName = " A " }, []string{MsgNameTooShort}},
		{"bad email", func(s *Submission) { s.ReplyTo = "ada@example" }, []string{MsgInvalidEmail}},
		{"email with space", func(s *Submission) { s.ReplyTo = "ada lovelace@example.com" }, []string{MsgInvalidEmail}},
		{"missing interest", func(s *Submission) { s.InterestArea = "" }, []string{MsgMissingInterest}},
		{"short message", func(s *Submission) { s.Message = "  hi there " }, []string{MsgMessageTooShort}},
		{"honeypot", func(s *Submission) { s.Honeypot = "http://spam" }, []string{MsgSpamDetected}},
		{"blank honeypot", func(s *Submission) { s.Honeypot = "   " }, []string{}},
		{
			"everything wrong",
			func(s *Submission) { *s = Submission{Honeypot: "x"} },
			[]string{MsgNameTooShort, MsgInvalidEmail, MsgMissingInterest, MsgMessageTooShort, MsgSpamDetected},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.ReplyTo = "ada@example.com"
			tt.mutate(&s)
			assert.Equal(t, tt.want, s.Validate())
		})
	}
}

func TestSubmission_Normalize(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	s := validSubmission()
	s.Message = "  <p>Hello <b>team</b></p><script>alert(1)</script> "

	msg := s.Normalize("studio@lunai.studio", "test-agent", now)

	assert.Equal(t, "Ada Lovelace", msg.FromName)
	assert.Equal(t, "ada@example.com", msg.ReplyTo)
	assert.Equal(t, "branding", msg.InterestArea)
	assert.Equal(t, "Hello team", msg.Message)
	assert.Equal(t, "studio@lunai.studio", msg.ToEmail)
	assert.Equal(t, now, msg.SentAt)
	assert.Equal(t, "test-agent", msg.UserAgent)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text stays", StripHTML("plain text stays"))
	assert.Equal(t, "Tom & Jerry", StripHTML("Tom &amp; Jerry"))
	assert.Equal(t, "a list", StripHTML("<ul><li>a list</li></ul>"))
	assert.Equal(t, "", StripHTML("<style>p{}</style>"))
}
