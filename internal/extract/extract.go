// Package extract loads a document's plain text from disk, pulling text out
// of PDFs when needed.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// File reads the document at path and returns its display name and extracted
// plain text. PDF files go through text extraction; .txt and .md files are
// read as-is.
func File(path string) (name, content string, err error) {
	name = filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		content, err = pdfText(path)
	case ".txt", ".md":
		var data []byte
		data, err = os.ReadFile(path)
		content = string(data)
	default:
		err = fmt.Errorf("unsupported document type %q (want .pdf, .txt or .md)", filepath.Ext(path))
	}
	return name, content, err
}

func pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	body, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", fmt.Errorf("no extractable text in %s (scanned image?)", filepath.Base(path))
	}
	return buf.String(), nil
}
