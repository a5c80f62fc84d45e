package entity

// CompletionMessage is returned once every question of a session has an answer.
const CompletionMessage = "All questions have been answered."

// Session is a single idea-refinement conversation.
// Answers[i] answers Questions[i]; len(Answers) never exceeds len(Questions).
type Session struct {
	ID        string   `json:"session_id"`
	Idea      string   `json:"idea"`
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
}

// IsComplete reports whether every question has been answered.
func (s *Session) IsComplete() bool {
	return len(s.Answers) >= len(s.Questions)
}

// NextQuestion returns the first unanswered question.
func (s *Session) NextQuestion() (string, bool) {
	if s.IsComplete() {
		return "", false
	}
	return s.Questions[len(s.Answers)], true
}

// Clone returns a deep copy so stored sessions are never shared with callers.
func (s *Session) Clone() *Session {
	return &Session{
		ID:        s.ID,
		Idea:      s.Idea,
		Questions: append([]string(nil), s.Questions...),
		Answers:   append(make([]string, 0, len(s.Answers)), s.Answers...),
	}
}

type QuestionWithAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Answered bool   `json:"answered"`
}

// Transcript pairs every answered question with its answer, followed by
// the unanswered questions. An empty answer is still an answer.
func (s *Session) Transcript() []QuestionWithAnswer {
	result := make([]QuestionWithAnswer, 0, len(s.Questions))
	for i, q := range s.Questions {
		item := QuestionWithAnswer{Question: q}
		if i < len(s.Answers) {
			item.Answer = s.Answers[i]
			item.Answered = true
		}
		result = append(result, item)
	}
	return result
}
