package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedFormat is returned when neither the file extension nor the
// content type maps to a known extractor.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Result is the output of a text extraction pass.
//
// RawText is the whole document as one string (newlines inside). Lines is the
// same text as a line-oriented view ready for downstream parsing.
type Result struct {
	RawText string
	Lines   []string
}

// Extract pulls plain text from an in-memory payload. The extractor is chosen
// by file extension first; the content type is consulted only when the
// extension is absent or unrecognized.
func Extract(data []byte, fileName string, contentType string) (Result, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	}

	switch strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0])) {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	}

	return Result{}, fmt.Errorf("%w: filename=%q content_type=%q", ErrUnsupportedFormat, fileName, contentType)
}

// extractPDF concatenates per-page text with newline separators. A page whose
// text cannot be pulled contributes an empty string, not an error.
func extractPDF(data []byte) (Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
	}

	rawText := strings.Join(pages, "\n")
	lines := strings.Split(rawText, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return Result{RawText: rawText, Lines: lines}, nil
}

// extractDOCX concatenates paragraph texts, dropping fully-empty paragraphs.
// DOCX paragraph boundaries are reliable, so blanks carry no signal here
// (unlike PDF line breaks, which are kept).
func extractDOCX(data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return Result{}, errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return Result{}, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return Result{}, err
	}

	paragraphs, err := docxParagraphs(raw)
	if err != nil {
		return Result{}, err
	}

	return Result{
		RawText: strings.Join(paragraphs, "\n"),
		Lines:   paragraphs,
	}, nil
}

// docxParagraphs walks word/document.xml and returns the trimmed non-empty
// paragraph texts in document order.
func docxParagraphs(raw []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var paragraphs []string
	var current strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			current.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		}
	}
	if text := strings.TrimSpace(current.String()); text != "" {
		paragraphs = append(paragraphs, text)
	}
	return paragraphs, nil
}
