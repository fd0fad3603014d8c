package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/schedule"
)

const systemPrompt = `You extract rental booking details from user text.
Respond with a single JSON object and nothing else:
{"start_date":"YYYY-MM-DD","end_date":"YYYY-MM-DD or empty","duration_days":0,"address":""}
Leave end_date empty and duration_days 0 when the text does not name them.`

type openAI struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewOpenAI returns an extractor backed by an OpenAI-compatible
// chat-completions endpoint.
func NewOpenAI(endpoint, apiKey, model string) Extractor {
	return &openAI{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type extractedJSON struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DurationDays int    `json:"duration_days"`
	Address      string `json:"address"`
}

func (o *openAI) Extract(ctx context.Context, text string) (*Result, error) {
	payload, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: extraction request failed: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read extraction response: %v", domain.ErrExtractionFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: extraction endpoint returned %d: %s",
			domain.ErrExtractionFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("%w: malformed extraction response: %v", domain.ErrExtractionFailed, err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: extraction response has no choices", domain.ErrExtractionFailed)
	}

	return parseModelOutput(chat.Choices[0].Message.Content)
}

// parseModelOutput decodes the model's JSON answer, tolerating markdown code
// fences around it.
func parseModelOutput(content string) (*Result, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var ext extractedJSON
	if err := json.Unmarshal([]byte(content), &ext); err != nil {
		return nil, fmt.Errorf("%w: model did not return valid JSON: %v", domain.ErrExtractionFailed, err)
	}
	if ext.StartDate == "" {
		return nil, fmt.Errorf("%w: model found no start date", domain.ErrExtractionFailed)
	}

	res := &Result{DurationDays: ext.DurationDays, Address: strings.TrimSpace(ext.Address)}
	var err error
	if res.Start, err = schedule.ParseDate(ext.StartDate); err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", domain.ErrExtractionFailed, ext.StartDate)
	}
	if ext.EndDate != "" {
		if res.End, err = schedule.ParseDate(ext.EndDate); err != nil {
			return nil, fmt.Errorf("%w: bad end date %q", domain.ErrExtractionFailed, ext.EndDate)
		}
	}
	return res, nil
}
