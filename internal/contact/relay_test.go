package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		FromName:     "Ada Lovelace",
		ReplyTo:      "ada@example.com",
		InterestArea: "branding",
		Message:      "We would like a full rebrand.",
		ToEmail:      "studio@lunai.studio",
		SentAt:       time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		UserAgent:    "test-agent",
	}
}

func TestEmailJSClient_Send(t *testing.T) {
	var got emailJSRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := NewEmailJSClient(EmailJSConfig{
		Endpoint:   server.URL,
		PublicKey:  "pk_123",
		PrivateKey: "sk_456",
		ServiceID:  "service_lunai",
		TemplateID: "template_contact",
	})

	require.NoError(t, client.Send(context.Background(), testMessage()))

	assert.Equal(t, "service_lunai", got.ServiceID)
	assert.Equal(t, "template_contact", got.TemplateID)
	assert.Equal(t, "pk_123", got.UserID)
	assert.Equal(t, "sk_456", got.AccessToken)
	assert.Equal(t, "Ada Lovelace", got.TemplateParams["from_name"])
	assert.Equal(t, "ada@example.com", got.TemplateParams["reply_to"])
	assert.Equal(t, "branding", got.TemplateParams["interest_area"])
	assert.Equal(t, "studio@lunai.studio", got.TemplateParams["to_email"])
	assert.NotEmpty(t, got.TemplateParams["sent_at"])
}

func TestEmailJSClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("The template ID is invalid"))
	}))
	defer server.Close()

	client := NewEmailJSClient(EmailJSConfig{
		Endpoint:   server.URL,
		PublicKey:  "pk_123",
		ServiceID:  "service_lunai",
		TemplateID: "bad",
	})

	err := client.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "template ID is invalid")
}

func TestEmailJSClient_NotConfigured(t *testing.T) {
	client := NewEmailJSClient(EmailJSConfig{PublicKey: "YOUR_PUBLIC_KEY_HERE", ServiceID: "s", TemplateID: "t"})
	assert.ErrorIs(t, client.Send(context.Background(), testMessage()), ErrNotConfigured)

	assert.False(t, EmailJSConfig{PublicKey: "pk"}.Configured())
	assert.True(t, EmailJSConfig{PublicKey: "pk", ServiceID: "s", TemplateID: "t"}.Configured())
}
