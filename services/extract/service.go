package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Service turns uploaded documents into plain text. The declared MIME type
// picks the extractor; magic bytes are checked first so a mislabeled upload
// cannot route a binary into the wrong parser.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

const wordProcessingMIME = "wordprocessingml"

// ExtractText returns the plain text of a PDF, DOCX or plain-text upload.
// Unsupported or corrupt documents return an error; callers fold that into
// the empty-source validation path.
func (s *Service) ExtractText(originalName, mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file: %s", originalName)
	}

	mt := strings.ToLower(strings.TrimSpace(mimeType))
	ext := strings.ToLower(filepath.Ext(originalName))

	if isPDF(data) {
		return extractPDF(data)
	}
	if isZip(data) {
		return extractDOCX(data)
	}

	if mt == "application/pdf" || ext == ".pdf" {
		return "", fmt.Errorf("file claims pdf but is missing the %%PDF header: %s", originalName)
	}
	if strings.Contains(mt, wordProcessingMIME) || ext == ".docx" {
		return "", fmt.Errorf("file claims docx but is not a valid zip container: %s", originalName)
	}

	if strings.Contains(mt, "text/plain") || ext == ".txt" || ext == ".md" || isProbablyText(data) {
		return collapseWhitespace(string(data)), nil
	}

	return "", fmt.Errorf("unsupported file type: name=%s mime=%s", originalName, mimeType)
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func isProbablyText(b []byte) bool {
	sample := b
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	printable := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			printable++
		}
	}
	return float64(printable)/float64(len(sample)) > 0.9
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return collapseWhitespace(string(text)), nil
}

// extractDOCX pulls the text runs (<w:t>) out of word/document.xml.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx container: %w", err)
	}

	var document *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("zip does not contain word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open word/document.xml: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read word/document.xml: %w", err)
	}

	text := collapseWhitespace(textRunsFromXML(raw))
	if text == "" {
		return "", fmt.Errorf("no text extracted from docx")
	}
	return text, nil
}

func textRunsFromXML(raw []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "t" {
			continue
		}
		var v string
		_ = dec.DecodeElement(&v, &se)
		if v != "" {
			out.WriteString(v)
			out.WriteString(" ")
		}
	}
	return out.String()
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
