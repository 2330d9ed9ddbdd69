// Package doctext acquires plain document text for the extraction engine.
// The engine itself only ever sees strings; binary formats are handled here,
// as a pre-processing collaborator, via the pdftotext CLI.
package doctext

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Reader loads document text from files.
type Reader struct {
	pdfToTextPath string
}

// NewReader creates a Reader. If pdfToTextPath is empty, "pdftotext" is used.
func NewReader(pdfToTextPath string) *Reader {
	if pdfToTextPath == "" {
		pdfToTextPath = "pdftotext"
	}
	return &Reader{pdfToTextPath: pdfToTextPath}
}

// Supported reports whether the file extension is a readable document type.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md", ".pdf":
		return true
	default:
		return false
	}
}

// Read returns the text content of the document at path.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", eris.Wrapf(err, "doctext: read %s", path)
		}
		return string(data), nil
	case ".pdf":
		return r.pdfText(ctx, path)
	default:
		return "", eris.Errorf("doctext: unsupported document type %q", filepath.Ext(path))
	}
}

// pdfText runs pdftotext -layout on the given PDF and returns stdout.
func (r *Reader) pdfText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, r.pdfToTextPath, "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "doctext: pdftotext failed for %s: %s", path, stderr.String())
	}

	return stdout.String(), nil
}
