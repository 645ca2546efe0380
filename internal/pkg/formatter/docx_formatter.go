package formatter

import (
	"bytes"

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

func (mf *DOCXFormatter) Format(a Answer) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	addStyled(doc, "Title", baseTitle)
	addStyled(doc, "Subtitle", a.dateLine())

	addStyled(doc, "Heading1", "Question")
	addStyled(doc, "Normal", a.Question)

	addStyled(doc, "Heading1", "Answer")
	addStyled(doc, "Normal", a.Answer)

	if len(a.Sources) > 0 {
		addStyled(doc, "Heading1", "Sources")
		for _, src := range a.Sources {
			addStyled(doc, "ListParagraph", src)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addStyled(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
