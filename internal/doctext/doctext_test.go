package doctext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("agreement.txt"))
	assert.True(t, Supported("agreement.TXT"))
	assert.True(t, Supported("notes.md"))
	assert.True(t, Supported("scan.pdf"))
	assert.False(t, Supported("data.docx"))
	assert.False(t, Supported("archive.zip"))
	assert.False(t, Supported("noextension"))
}

func TestRead_PlainTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agreement.txt")
	require.NoError(t, os.WriteFile(path, []byte("CREDIT AGREEMENT between parties"), 0o644))

	text, err := NewReader("").Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "CREDIT AGREEMENT between parties", text)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := NewReader("").Read(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := NewReader("").Read(context.Background(), "agreement.docx")
	assert.Error(t, err)
}

func TestRead_PDFWithMissingConverter(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "no-such-pdftotext"))
	_, err := r.Read(context.Background(), "scan.pdf")
	assert.Error(t, err)
}

func TestNewReader_DefaultBinary(t *testing.T) {
	assert.Equal(t, "pdftotext", NewReader("").pdfToTextPath)
	assert.Equal(t, "/opt/pdftotext", NewReader("/opt/pdftotext").pdfToTextPath)
}
