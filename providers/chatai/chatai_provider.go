package chatai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/morler/codeassist/app_errors"
	logger "github.com/morler/codeassist/logger/contracts"
	chatai_models "github.com/morler/codeassist/providers/chatai/models"
	"github.com/morler/codeassist/providers/contracts"
	"github.com/morler/codeassist/providers/models"
	request_models "github.com/morler/codeassist/request_assembler/models"
)

// ChatAIConfig implements the delivery client for a single chat endpoint.
type ChatAIConfig struct {
	ApiKeyVar      string
	ApiEndpointVar string
	ApiKeyHeader   string
	RequestTimeout time.Duration
	Log            logger.ILogger

	client *http.Client
}

const defaultApiKeyHeader = "api-key"

// NewChatAIProvider initializes a new delivery client. Credentials are read from the
// environment on every request, not here.
func NewChatAIProvider(config *ChatAIConfig) contracts.IDeliveryClient {
	apiKeyHeader := config.ApiKeyHeader
	if apiKeyHeader == "" {
		apiKeyHeader = defaultApiKeyHeader
	}
	return &ChatAIConfig{
		ApiKeyVar:      config.ApiKeyVar,
		ApiEndpointVar: config.ApiEndpointVar,
		ApiKeyHeader:   apiKeyHeader,
		RequestTimeout: config.RequestTimeout,
		Log:            config.Log,
		client:         &http.Client{Timeout: config.RequestTimeout},
	}
}

// Deliver makes exactly one POST to the configured endpoint. On HTTP 200 the first
// candidate's first text part is written to savePath. Every failure is reported in the
// result; nothing is retried.
func (provider *ChatAIConfig) Deliver(ctx context.Context, savePath string, segments []request_models.Segment) models.DeliveryResult {
	apiKey := os.Getenv(provider.ApiKeyVar)
	endpoint := os.Getenv(provider.ApiEndpointVar)

	parts := make([]chatai_models.Part, 0, len(segments))
	for _, segment := range segments {
		parts = append(parts, chatai_models.Part{Text: segment.Text})
	}
	reqBody := chatai_models.ChatAIRequest{
		Contents: []chatai_models.Content{{Role: request_models.UserRole, Parts: parts}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return provider.fail(&app_errors.DeliveryError{Err: fmt.Errorf("error marshalling request body: %w", err)})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return provider.fail(&app_errors.DeliveryError{Err: fmt.Errorf("error creating request: %w", err)})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(provider.ApiKeyHeader, apiKey)

	provider.Log.Info("requesting Chat AI response")

	resp, err := provider.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return provider.fail(&app_errors.DeliveryError{Err: fmt.Errorf("request canceled: %w", err)})
		}
		return provider.fail(&app_errors.DeliveryError{Err: fmt.Errorf("error sending request: %w", err)})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.fail(&app_errors.DeliveryError{StatusCode: resp.StatusCode, Err: fmt.Errorf("error reading response: %w", err)})
	}

	if resp.StatusCode != http.StatusOK {
		provider.Log.Warning("> response unsuccessful: %d, response: %s", resp.StatusCode, string(body))
		return models.Failed(&app_errors.DeliveryError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	provider.Log.Info("> response successful")

	text, err := extractText(body)
	if err != nil {
		return provider.fail(&app_errors.DeliveryError{Err: err})
	}

	if err := os.WriteFile(savePath, []byte(text), 0644); err != nil {
		return provider.fail(&app_errors.DeliveryError{Err: fmt.Errorf("failed to write to file: %w", err)})
	}

	provider.Log.Info("> saved file: %s", savePath)

	return models.DeliveryResult{Success: true, WrittenPath: savePath, Content: text}
}

// extractText reads candidates[0].content.parts[0].text.
func extractText(body []byte) (string, error) {
	var response chatai_models.ChatAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %w", err)
	}
	if len(response.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	parts := response.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", errors.New("response candidate has no text part")
	}
	return *parts[0].Text, nil
}

func (provider *ChatAIConfig) fail(err *app_errors.DeliveryError) models.DeliveryResult {
	provider.Log.Warning("> request failed: %v", err)
	return models.Failed(err)
}
