package server

import (
	"net/http"

	"github.com/gabriel-vasile/mimetype"
)

// detectMIME determines a MIME type using stdlib detection first and
// falling back to the mimetype library when that is inconclusive.
func detectMIME(head []byte) string {
	if len(head) == 0 {
		return "text/plain"
	}
	mt := http.DetectContentType(head)
	if mt != "application/octet-stream" {
		return mt
	}
	return mimetype.Detect(head).String()
}
