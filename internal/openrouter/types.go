package openrouter

// Message represents a chat message.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Reasoning asks the provider to emit a parallel reasoning channel.
type Reasoning struct {
	Effort string `json:"effort"`
}

// ChatRequest represents a request to the chat completions endpoint.
type ChatRequest struct {
	Model     string     `json:"model"`
	Messages  []Message  `json:"messages"`
	Stream    bool       `json:"stream,omitempty"`
	Reasoning *Reasoning `json:"reasoning,omitempty"`
}

// ChatResponse represents a non-streaming completion response.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a single completion choice.
type Choice struct {
	Message Message `json:"message"`
}

// Completion is the final output of a model call: the visible answer text
// and the optional reasoning channel.
type Completion struct {
	Content  string
	Thinking string
}

// StreamOptions configures a completion call.
type StreamOptions struct {
	// Reasoning enables the parallel reasoning ("thinking") channel.
	Reasoning bool
}

// ChunkFunc receives cumulative content and thinking text after every
// incremental unit of a streaming response. Values only ever grow.
type ChunkFunc func(content, thinking string)

// streamChunk is one SSE data payload of a streaming completion.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			Reasoning string `json:"reasoning"`
		} `json:"delta"`
	} `json:"choices"`
}

// apiError is the error envelope OpenRouter returns on failed requests.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// Model represents an OpenRouter model.
type Model struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Pricing *Pricing `json:"pricing"`
}

// Pricing represents model pricing information.
type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// ModelsResponse represents the response from the models endpoint.
type ModelsResponse struct {
	Data []Model `json:"data"`
}
