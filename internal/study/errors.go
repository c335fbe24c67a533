package study

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrDocumentNotFound = errors.New("document not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrChatNotFound     = errors.New("chat not found")
	// ErrScannedDocument rejects operations that need extracted text from an
	// image-only document.
	ErrScannedDocument = errors.New("document is image-based and has no extractable text")
)
