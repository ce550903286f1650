// internal/workers/suggestions/fruit-advisor/models.go
package fruitadvisor

// SuggestionRequest is one advisory question, transient per HTTP call.
type SuggestionRequest struct {
	OrderSummary string `json:"orderSummary"`
	PeopleCount  int    `json:"peopleCount"`
	UserMessage  string `json:"userMessage"`
}

// SuggestionResponse is the broker's answer. Fallback marks answers produced
// without a usable completion from the model.
type SuggestionResponse struct {
	Answer    string `json:"answer"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
	Fallback  bool   `json:"fallback"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
