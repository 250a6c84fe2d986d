package documents

import "errors"

var (
	ErrMissingFields       = errors.New("title and file are required")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrFileMissing         = errors.New("document file missing from storage")
)
