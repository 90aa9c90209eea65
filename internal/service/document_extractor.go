package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/lshigami/hirewise/internal/apperror"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"
)

type DocumentKind string

const (
	DocumentPDF  DocumentKind = "pdf"
	DocumentDOCX DocumentKind = "docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MIMEType is the content type uploads of kind are stored with.
func (k DocumentKind) MIMEType() string {
	if k == DocumentDOCX {
		return mimeDOCX
	}
	return mimePDF
}

// DocumentExtractor recognizes resume uploads and pulls their plain text.
type DocumentExtractor interface {
	// Detect classifies a file by name and content. Unsupported files are
	// validation errors.
	Detect(fileName string, data []byte) (DocumentKind, error)
	ExtractText(kind DocumentKind, data []byte) (string, error)
}

type documentExtractor struct{}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{}
}

func (e *documentExtractor) Detect(fileName string, data []byte) (DocumentKind, error) {
	if len(data) == 0 {
		return "", apperror.Validation("Resume file is empty.")
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			return "", apperror.Validation("File %q is not a valid PDF document.", fileName)
		}
		return DocumentPDF, nil
	case ".docx":
		// docx files are zip archives
		if !bytes.HasPrefix(data, []byte("PK")) {
			return "", apperror.Validation("File %q is not a valid DOCX document.", fileName)
		}
		return DocumentDOCX, nil
	default:
		return "", apperror.Validation("Only PDF and DOCX files are supported.")
	}
}

func (e *documentExtractor) ExtractText(kind DocumentKind, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch kind {
	case DocumentPDF:
		text, err = extractPDFText(data)
	case DocumentDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported document kind: %s", kind)
	}
	if err != nil {
		return "", err
	}
	return normalizeWhitespace(text), nil
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("PDF text extraction panicked")
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Debug().Err(err).Int("page", i).Msg("Skipping unreadable PDF page")
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripXMLTags(doc.Editable().GetContent()), nil
}

// stripXMLTags drops the WordprocessingML markup GetContent returns, turning
// paragraph ends into newlines.
func stripXMLTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
