// Package gemini extracts order entities with a Google Gemini model and
// falls back to another extractor when the model keeps failing.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/core/ports"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	DefaultModel = "gemini-2.0-flash"
	maxAttempts  = 2
)

var errEmptyResponse = errors.New("empty model response")

const promptTemplate = `Bạn là một trợ lý phân tích ngôn ngữ tự nhiên.
Yêu cầu: Trích xuất các thực thể từ câu sau:
- "book_title": tên sách
- "quantity": số lượng
- "customer_name": tên khách hàng
- "phone": số điện thoại
- "address": địa chỉ
- Nếu có NHIỀU sách: "books" là array
- Nếu chỉ có 1 sách: "book_title" và "quantity" riêng biệt

Trả về JSON duy nhất theo format:
Format cho nhiều sách:
{"entities": {"books": [{"title": "sách 1", "quantity": 2}, {"title": "sách 2", "quantity": 3}], "customer_name": null, "phone": null, "address": null}}

Format cho 1 sách:
{"entities": {"book_title": "tên sách", "quantity": "...", "customer_name": null, "phone": null, "address": null}}

Câu cần phân tích: %q`

// generator is the part of *genai.GenerativeModel the extractor calls.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Extractor implements ports.EntityExtractor on top of Gemini.
type Extractor struct {
	model    generator
	fallback ports.EntityExtractor
	logger   *zap.Logger
	client   *genai.Client
}

// NewExtractor creates a Gemini client for apiKey and modelName.
func NewExtractor(ctx context.Context, apiKey, modelName string, fallback ports.EntityExtractor, logger *zap.Logger) (*Extractor, error) {
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	e := newExtractor(model, fallback, logger)
	e.client = client
	return e, nil
}

func newExtractor(model generator, fallback ports.EntityExtractor, logger *zap.Logger) *Extractor {
	return &Extractor{
		model:    model,
		fallback: fallback,
		logger:   logger.Named("gemini"),
	}
}

// Extract asks the model up to twice, then hands the text to the fallback.
func (e *Extractor) Extract(ctx context.Context, text string) (nlu.Entities, error) {
	prompt := fmt.Sprintf(promptTemplate, text)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		entities, err := e.ask(ctx, prompt)
		if err == nil {
			return entities, nil
		}
		lastErr = err
		e.logger.Warn("entity extraction attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}

	if e.fallback == nil {
		return nlu.Entities{}, lastErr
	}
	e.logger.Info("using fallback entity extraction")
	return e.fallback.Extract(ctx, text)
}

func (e *Extractor) ask(ctx context.Context, prompt string) (nlu.Entities, error) {
	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nlu.Entities{}, fmt.Errorf("gemini generate error: %w", err)
	}
	return parseResponse(resp)
}

func parseResponse(resp *genai.GenerateContentResponse) (nlu.Entities, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nlu.Entities{}, errEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	raw := strings.TrimSpace(sb.String())
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "json"))
	if raw == "" {
		return nlu.Entities{}, errEmptyResponse
	}

	var doc struct {
		Entities nlu.Entities `json:"entities"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nlu.Entities{}, fmt.Errorf("parse model output: %w", err)
	}
	return doc.Entities, nil
}

// Close releases the client.
func (e *Extractor) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}
