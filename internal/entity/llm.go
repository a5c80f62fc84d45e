package entity

// LLMGenerateRequest is a single prompt sent to the generation collaborator.
type LLMGenerateRequest struct {
	Prompt string
}

// LLMGenerateResponse is the raw completion text.
type LLMGenerateResponse struct {
	Text string
}
