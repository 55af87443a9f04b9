package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taskvest/taskvest/internal/config"
	"github.com/taskvest/taskvest/pkg/clients"
	"go.uber.org/zap"
)

// Decision is the structured judgment returned by the verification service.
type Decision struct {
	Approved bool   `json:"is_approved"`
	Reason   string `json:"reason"`
}

const (
	ReasonApproved       = "Approved"
	ReasonTitleMismatch  = "Title mismatch"
	ReasonNotHandwritten = "Not handwritten"
	ReasonInvalidContent = "Invalid content"
	// ReasonVerifyFailed is the fail-closed fallback: a verification service
	// failure never counts as an approval.
	ReasonVerifyFailed = "Verification failed, please try again"
)

const instructions = `You are verifying a handwritten homework submission.
The task title is: %q

Rules:
1. The task title must be written by hand at the top of at least one page and must match the given title exactly.
2. All submitted content must be handwritten. Typed or printed pages are rejected.

Respond with JSON only, no other text:
{"is_approved": true or false, "reason": "Approved" | "Title mismatch" | "Not handwritten" | "Invalid content"}`

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	url    string
	apiKey string
	model  string
	client clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		url:    cfg.VerifierAddress,
		apiKey: cfg.VerifierAPIKey,
		model:  cfg.VerifierModel,
		client: client,
	}
}

// Verify judges the submitted pages against the task title. Every transport or
// parsing failure maps to a not-approved decision with a retryable reason.
func (c *Client) Verify(ctx context.Context, taskTitle string, images []string) Decision {
	decision, err := c.judge(ctx, taskTitle, images)
	if err != nil {
		zap.L().Error("verification request failed", zap.String("title", taskTitle), zap.Error(err))
		return Decision{Approved: false, Reason: ReasonVerifyFailed}
	}
	return decision
}

func (c *Client) judge(ctx context.Context, taskTitle string, images []string) (Decision, error) {
	content := make([]contentPart, 0, len(images)+1)
	content = append(content, contentPart{Type: "text", Text: fmt.Sprintf(instructions, taskTitle)})
	for _, img := range images {
		content = append(content, contentPart{Type: "image_url", ImageURL: &imageURL{URL: img}})
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return Decision{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Decision{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("verification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Decision{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Decision{}, fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return Decision{}, fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return Decision{}, fmt.Errorf("empty choices in response")
	}

	return parseDecision(chatResp.Choices[0].Message.Content)
}

// parseDecision extracts the JSON decision from the model answer. Models tend
// to wrap JSON in markdown fences even when told not to.
func parseDecision(answer string) (Decision, error) {
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")
	answer = strings.TrimSpace(answer)

	var decision Decision
	if err := json.Unmarshal([]byte(answer), &decision); err != nil {
		return Decision{}, fmt.Errorf("parse decision: %w", err)
	}
	if decision.Reason == "" {
		return Decision{}, fmt.Errorf("decision without reason")
	}
	return decision, nil
}

// Ping checks the verification service is reachable before the server starts
// accepting submissions.
func (c *Client) Ping(ctx context.Context) error {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.apiKey)

	statusCode, _, _, err := c.client.Get(c.url+"/v1/models", headers)
	if err != nil {
		return fmt.Errorf("verification service unreachable: %w", err)
	}
	if statusCode != http.StatusOK {
		return fmt.Errorf("verification service returned status %d", statusCode)
	}
	return nil
}
