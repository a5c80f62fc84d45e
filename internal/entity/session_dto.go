package entity

type StartSessionRequest struct {
	Idea string `json:"idea"`
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type AnswerQuestionRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// AnswerQuestionResponse carries either the next question or the completion message.
type AnswerQuestionResponse struct {
	Question string `json:"question,omitempty"`
	Message  string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SessionDTO struct {
	ID        string   `json:"session_id"`
	Idea      string   `json:"idea"`
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
	Answered  int      `json:"answered"`
	Total     int      `json:"total"`
	Complete  bool     `json:"complete"`
}
