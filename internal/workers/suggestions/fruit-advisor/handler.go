// internal/workers/suggestions/fruit-advisor/handler.go
package fruitadvisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	commonerrors "fruitcenter-events/internal/common/errors"
	"fruitcenter-events/internal/common/logger"
	"fruitcenter-events/internal/common/metrics"
)

const (
	TaskType = "fruit-advisor"
)

var (
	ErrMissingFields = errors.New("MISSING_REQUIRED_FIELDS")
	ErrNotConfigured = errors.New("API_KEY_NOT_CONFIGURED")
	ErrUpstreamCall  = errors.New("UPSTREAM_CALL_FAILED")
)

const systemPersona = "You are a knowledgeable fruit and nutrition expert specializing in Indian fruits and dietary recommendations. You can calculate nutritional values of fruits based on their names."

const hindiDirective = "\nIMPORTANT: Answer ONLY in Hindi. Do not use English words or sentences."
const englishDirective = "\nIMPORTANT: Answer ONLY in English. Do not use Hindi or other languages."

// genericAnswer is returned for callers with no order history. It needs no
// external call.
const genericAnswer = "Here are some healthy fruits you can add to your daily life for a balanced diet:\n\n" +
	"- Apples: Great for fiber and vitamin C\n" +
	"- Bananas: Good for energy and potassium\n" +
	"- Oranges: Excellent source of vitamin C\n" +
	"- Papaya: Rich in vitamin A and digestive enzymes\n" +
	"- Berries: Packed with antioxidants\n" +
	"- Watermelon: Hydrating and refreshing\n" +
	"- Pomegranate: Good for heart health\n\n" +
	"Try to include a variety of fruits in your meals for the best nutrition! If you have any specific questions, feel free to ask!"

const emptyAnswerFallback = "Sorry, I couldn't generate a suggestion right now. Please try again or ask a different question!"

var (
	devanagariPattern = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	thinkBlockPattern = regexp.MustCompile(`(?is)<think>.*?</think>`)
)

// Handler brokers one suggestion request against the completion API. Upstream
// rejections and unusable completions degrade to fallback answers instead of
// surfacing errors to the caller.
type Handler struct {
	config *Config
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		// No client timeout; the per-request context carries the deadline.
		client: &http.Client{},
		logger: log.With(map[string]interface{}{"taskType": TaskType}),
		now:    time.Now,
	}
}

func (h *Handler) Execute(ctx context.Context, input *SuggestionRequest) (*SuggestionResponse, error) {
	if input.OrderSummary == "" && input.UserMessage == "" {
		return nil, ErrMissingFields
	}

	if strings.TrimSpace(input.OrderSummary) == "" {
		metrics.SuggestionRequestsTotal.WithLabelValues("generic").Inc()
		return h.respond(genericAnswer, false), nil
	}

	if h.config.APIKey == "" {
		h.logger.Error("completion API key not configured", nil)
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	answer, err := h.requestCompletion(ctx, input)
	if err != nil {
		if errors.Is(err, ErrUpstreamCall) {
			return nil, err
		}
		// Upstream answered with a non-success status; degrade to the
		// history-aware fallback.
		stdErr := commonerrors.NewSuggestionAPIFailedError(err)
		h.logger.Warn("completion API rejected request, using fallback", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
		metrics.SuggestionRequestsTotal.WithLabelValues("fallback").Inc()
		return h.respond(historyFallback(input.OrderSummary), true), nil
	}

	answer = strings.TrimSpace(thinkBlockPattern.ReplaceAllString(answer, ""))
	if answer == "" {
		metrics.SuggestionRequestsTotal.WithLabelValues("fallback").Inc()
		return h.respond(emptyAnswerFallback, true), nil
	}

	metrics.SuggestionRequestsTotal.WithLabelValues("answered").Inc()
	return h.respond(answer, false), nil
}

// requestCompletion performs the single completion attempt. Transport errors
// wrap ErrUpstreamCall; an HTTP-level rejection comes back as a plain error so
// the caller can degrade instead of failing.
func (h *Handler) requestCompletion(ctx context.Context, input *SuggestionRequest) (string, error) {
	payload := chatRequest{
		Model: h.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPersona},
			{Role: "user", Content: buildPrompt(input)},
		},
		Temperature: h.config.Temperature,
		MaxTokens:   h.config.MaxTokens,
		TopP:        h.config.TopP,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.config.BaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamCall, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
	req.Header.Set("X-Title", "Super Fruit Center")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstreamCall, err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func (h *Handler) respond(answer string, fallback bool) *SuggestionResponse {
	return &SuggestionResponse{
		Answer:    answer,
		Success:   true,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Fallback:  fallback,
	}
}

// buildPrompt renders the deterministic advisory prompt. The language
// directive follows the script of the user's question: Devanagari means a
// Hindi-only answer, anything else English-only.
func buildPrompt(input *SuggestionRequest) string {
	directive := englishDirective
	if devanagariPattern.MatchString(input.UserMessage) {
		directive = hindiDirective
	}

	return fmt.Sprintf("You are a fruit and nutrition expert for Indian users.\n\n"+
		"CONTEXT:\n"+
		"- User's fruit order history: %s\n"+
		"- Number of people in household: %d\n\n"+
		"USER QUESTION: %s\n\n"+
		"Please provide a helpful, personalized response that:\n"+
		"1. Acknowledges their order history and preferences\n"+
		"2. Analyzes the nutritional value of fruits in their orders (calculate vitamins, minerals, fiber, etc.)\n"+
		"3. Gives practical fruit recommendations based on their question\n"+
		"4. Considers Indian fruit availability and seasonal factors\n"+
		"5. Suggests specific fruits with brief nutritional benefits\n"+
		"6. Keeps the response conversational and friendly\n"+
		"7. Limits response to 2-3 sentences for mobile readability\n\n"+
		"IMPORTANT: Calculate nutrition values yourself based on the fruit names mentioned in their order history. "+
		"Don't ask for nutrition data - provide it based on your knowledge of fruits.\n\n"+
		"If the user asks about specific fruits, provide detailed information about taste, nutrition, and best consumption practices.%s",
		input.OrderSummary, input.PeopleCount, input.UserMessage, directive)
}

// historyFallback embeds the caller's order history into a canned
// recommendation when the completion API is unavailable.
func historyFallback(orderSummary string) string {
	return fmt.Sprintf("Based on your order history (%s), here are some personalized fruit recommendations:\n\n"+
		"🍎 **For Vitamin C**: Oranges, strawberries, and kiwis are excellent choices. Your recent orders show you enjoy fresh fruits, so try adding more citrus fruits to your diet.\n\n"+
		"🍌 **For Energy**: Bananas and apples provide natural energy and are great for daily consumption.\n\n"+
		"🥭 **Seasonal Picks**: Mangoes and watermelons are perfect for the current season and provide excellent hydration.\n\n"+
		"💡 **Tip**: Consider adding more variety to your fruit intake for balanced nutrition. Each fruit offers unique health benefits!",
		orderSummary)
}
