package storage

import (
	"bytes"
	"path/filepath"
	"strings"
)

// MaxResumeSize caps resume uploads at 5 MB, enforced before any byte is
// persisted.
const MaxResumeSize = 5 * 1024 * 1024

// FileValidationResult contains the result of resume file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // MIME type reported by the client
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed resume types.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                 // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},         // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                 // ZIP (PK..)
	".txt":  {},                                                         // no magic bytes, rely on MIME
}

// Allowed resume extensions (strict whitelist)
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// Strict MIME types - application/octet-stream is deliberately absent.
var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	// ZIP-based documents (DOCX detection fallback)
	"application/zip": true,
}

// ValidateResume performs layered validation on an uploaded resume:
// size cap, extension whitelist, magic byte check, MIME allow-list.
func ValidateResume(filename string, data []byte, mimeType string) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: mimeType,
	}

	if len(data) == 0 {
		result.Error = "file is empty"
		return result
	}
	if len(data) > MaxResumeSize {
		result.Error = "file exceeds the 5 MB limit"
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if !allowedExtensions[ext] {
		result.Error = "file type not allowed: " + ext
		return result
	}

	if signatures := magicBytes[ext]; len(signatures) > 0 {
		matched := false
		for _, sig := range signatures {
			if len(data) >= len(sig) && bytes.Equal(data[:len(sig)], sig) {
				matched = true
				break
			}
		}
		if !matched {
			result.Error = "file content does not match its extension"
			return result
		}
	}

	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	if mime != "" && !allowedMIMETypes[mime] {
		result.Error = "MIME type not allowed: " + mime
		return result
	}

	result.Valid = true
	return result
}
