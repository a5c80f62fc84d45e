package formatter

import (
	"fmt"

	"github.com/futig/flowcraft-backend/internal/entity"
)

const (
	baseTitle       = "FlowCraft session"
	ideaHeading     = "Idea"
	unansweredLabel = "(not answered yet)"
)

// Document is the format-independent view of a session export.
type Document struct {
	Title string
	Idea  string
	Items []entity.QuestionWithAnswer
}

// FromSession builds the export document for a session.
func FromSession(session *entity.Session) *Document {
	return &Document{
		Title: baseTitle,
		Idea:  session.Idea,
		Items: session.Transcript(),
	}
}

func answerText(item entity.QuestionWithAnswer) string {
	if !item.Answered {
		return unansweredLabel
	}
	return item.Answer
}

type Formatter interface {
	Format(doc *Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
