package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskvest/taskvest/internal/config"
	"github.com/taskvest/taskvest/pkg/clients"
)

func newTestClient(url string) *Client {
	cfg := &config.Config{
		VerifierAddress: url,
		VerifierAPIKey:  "test-key",
		VerifierModel:   "test-model",
	}
	return New(cfg, clients.NewHTTPClient())
}

func answerWith(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	body, _ := json.Marshal(resp)
	return string(body)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected Decision
	}{
		{
			name:     "Approved decision",
			status:   http.StatusOK,
			body:     answerWith(`{"is_approved": true, "reason": "Approved"}`),
			expected: Decision{Approved: true, Reason: ReasonApproved},
		},
		{
			name:     "Rejected decision",
			status:   http.StatusOK,
			body:     answerWith(`{"is_approved": false, "reason": "Not handwritten"}`),
			expected: Decision{Approved: false, Reason: ReasonNotHandwritten},
		},
		{
			name:     "Decision wrapped in markdown fences",
			status:   http.StatusOK,
			body:     answerWith("```json\n{\"is_approved\": false, \"reason\": \"Title mismatch\"}\n```"),
			expected: Decision{Approved: false, Reason: ReasonTitleMismatch},
		},
		{
			name:     "Service error fails closed",
			status:   http.StatusInternalServerError,
			body:     "internal error",
			expected: Decision{Approved: false, Reason: ReasonVerifyFailed},
		},
		{
			name:     "Rate limit fails closed",
			status:   http.StatusTooManyRequests,
			body:     "slow down",
			expected: Decision{Approved: false, Reason: ReasonVerifyFailed},
		},
		{
			name:     "Unparseable answer fails closed",
			status:   http.StatusOK,
			body:     answerWith("the submission looks fine to me"),
			expected: Decision{Approved: false, Reason: ReasonVerifyFailed},
		},
		{
			name:     "Empty choices fails closed",
			status:   http.StatusOK,
			body:     `{"choices": []}`,
			expected: Decision{Approved: false, Reason: ReasonVerifyFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			decision := newTestClient(srv.URL).Verify(context.Background(), "Daily Task 1", []string{"data:image/png;base64,AAAA"})
			assert.Equal(t, tt.expected, decision)
		})
	}
}

func TestVerify_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	decision := newTestClient(srv.URL).Verify(context.Background(), "Daily Task 1", []string{"data:image/png;base64,AAAA"})
	assert.False(t, decision.Approved)
	assert.Equal(t, ReasonVerifyFailed, decision.Reason)
}

func TestVerify_RequestPayload(t *testing.T) {
	var got chatRequest
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, answerWith(`{"is_approved": true, "reason": "Approved"}`))
	}))
	defer srv.Close()

	images := []string{"data:image/png;base64,AAAA", "data:image/jpeg;base64,BBBB"}
	decision := newTestClient(srv.URL).Verify(context.Background(), "Daily Task 1", images)

	assert.True(t, decision.Approved)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "test-model", got.Model)
	assert.Len(t, got.Messages, 1)

	content := got.Messages[0].Content
	assert.Len(t, content, 3)
	assert.Equal(t, "text", content[0].Type)
	assert.Contains(t, content[0].Text, `"Daily Task 1"`)
	assert.Equal(t, "image_url", content[1].Type)
	assert.Equal(t, images[0], content[1].ImageURL.URL)
	assert.Equal(t, images[1], content[2].ImageURL.URL)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv.URL).Ping(context.Background()))

	srvDown := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srvDown.Close()

	assert.Error(t, newTestClient(srvDown.URL).Ping(context.Background()))
}
