package formatter

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(doc *Document) ([]byte, error) {
	d := document.New()
	defer d.Close()

	addParagraph(d, "Title", doc.Title)
	addParagraph(d, "Heading1", ideaHeading)
	addParagraph(d, "", doc.Idea)

	for i, item := range doc.Items {
		addParagraph(d, "Heading2", fmt.Sprintf("%d. %s", i+1, item.Question))
		addParagraph(d, "", answerText(item))
	}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addParagraph(d *document.Document, style, text string) {
	par := d.AddParagraph()
	if style != "" {
		par.SetStyle(style)
	}
	par.AddRun().AddText(text)
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
