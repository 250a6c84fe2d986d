package documents

import "io"

// Upload is one add_document request after the multipart body is parsed.
// Content is nil when no file part was sent.
type Upload struct {
	Title    string
	Category string
	Filename string
	Content  io.Reader
}
