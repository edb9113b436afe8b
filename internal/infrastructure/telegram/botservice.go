package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// BotService provides the subset of the Telegram Bot API used for
// notifications.
type BotService struct {
	httpClient *http.Client
	baseURL    string
}

type BotOption func(*BotService)

// WithAPIBase points the service at another Bot API server.
func WithAPIBase(base string) BotOption {
	return func(s *BotService) { s.baseURL = base }
}

func WithHTTPClient(c *http.Client) BotOption {
	return func(s *BotService) { s.httpClient = c }
}

// NewBotService creates a new Telegram bot service
func NewBotService(botToken string, opts ...BotOption) *BotService {
	s := &BotService{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultAPIBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.baseURL = fmt.Sprintf("%s/bot%s", s.baseURL, botToken)
	return s
}

// SendMessage sends an HTML formatted message, split into chunks that fit
// Telegram's length limit.
func (s *BotService) SendMessage(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		body := map[string]any{
			"chat_id":                  chatID,
			"text":                     chunk,
			"parse_mode":               "HTML",
			"disable_web_page_preview": true,
		}
		if err := s.makeRequest(ctx, "sendMessage", body); err != nil {
			return err
		}
	}
	return nil
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

func (s *BotService) makeRequest(ctx context.Context, method string, body map[string]any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+method, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.OK {
		apiErr := &APIError{ErrorCode: result.ErrorCode, Description: result.Description}
		if result.Parameters != nil {
			apiErr.RetryAfter = result.Parameters.RetryAfter
		}
		return apiErr
	}

	return nil
}
