package storage_test

import (
	"bytes"
	"testing"

	"go-applytrack-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
)

func pdfBytes() []byte {
	return append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 100)...)
}

func TestValidateResumeAcceptsPDF(t *testing.T) {
	result := storage.ValidateResume("resume.pdf", pdfBytes(), "application/pdf")
	assert.True(t, result.Valid, result.Error)
	assert.Equal(t, ".pdf", result.Extension)
}

func TestValidateResumeAcceptsTxt(t *testing.T) {
	result := storage.ValidateResume("resume.txt", []byte("plain text resume"), "text/plain")
	assert.True(t, result.Valid, result.Error)
}

func TestValidateResumeRejectsEmptyFile(t *testing.T) {
	result := storage.ValidateResume("resume.pdf", nil, "application/pdf")
	assert.False(t, result.Valid)
}

func TestValidateResumeRejectsOversizedFile(t *testing.T) {
	big := make([]byte, storage.MaxResumeSize+1)
	copy(big, "%PDF")
	result := storage.ValidateResume("resume.pdf", big, "application/pdf")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "5 MB")
}

func TestValidateResumeRejectsDisallowedExtension(t *testing.T) {
	result := storage.ValidateResume("malware.exe", []byte("MZ......"), "application/octet-stream")
	assert.False(t, result.Valid)
}

func TestValidateResumeRejectsMismatchedMagicBytes(t *testing.T) {
	// .pdf extension but not a PDF payload
	result := storage.ValidateResume("resume.pdf", []byte("<html>not a pdf</html>"), "application/pdf")
	assert.False(t, result.Valid)
}

func TestValidateResumeRejectsOctetStream(t *testing.T) {
	result := storage.ValidateResume("resume.pdf", pdfBytes(), "application/octet-stream")
	assert.False(t, result.Valid)
}

func TestValidateResumeStripsMIMEParameters(t *testing.T) {
	result := storage.ValidateResume("resume.txt", []byte("text"), "text/plain; charset=utf-8")
	assert.True(t, result.Valid, result.Error)
}
