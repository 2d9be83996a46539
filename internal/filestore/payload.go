package filestore

import (
	"encoding/base64"
	"mime"
	"path/filepath"
	"strings"
)

// Payload is a decoded "<mime-type>;base64,<data>" file payload.
type Payload struct {
	MimeType  string
	Extension string
	Content   []byte
}

// DecodePayload parses and decodes a base64 file payload. An optional "data:" prefix is accepted.
// Every malformed input yields ErrInvalidEncoding; nothing is touched in storage.
func DecodePayload(payload string) (Payload, error) {
	head, data, ok := strings.Cut(payload, ",")
	if !ok {
		return Payload{}, invalidEncoding("missing ',' separator")
	}

	i := strings.LastIndex(head, ";")
	if i < 0 {
		return Payload{}, invalidEncoding("missing ';' separator")
	}
	mimePart, encoding := head[:i], head[i+1:]
	if !strings.EqualFold(strings.TrimSpace(encoding), "base64") {
		return Payload{}, invalidEncoding("encoding must be base64")
	}

	mimePart = strings.TrimPrefix(strings.TrimSpace(mimePart), "data:")
	mediaType, _, err := mime.ParseMediaType(mimePart)
	if err != nil {
		return Payload{}, invalidEncoding("bad mime type")
	}
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || subtype == "" {
		return Payload{}, invalidEncoding("bad mime type")
	}

	content, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return Payload{}, invalidEncoding("data is not base64")
	}
	if len(content) == 0 {
		return Payload{}, invalidEncoding("data is empty")
	}

	return Payload{
		MimeType:  mediaType,
		Extension: extensionFor(mediaType, subtype),
		Content:   content,
	}, nil
}

// extensionFor derives a file extension from a mime subtype: "png" -> ".png", "svg+xml" -> ".svg".
// Vendor subtypes fall back to the system mime table, then to ".bin".
func extensionFor(mediaType, subtype string) string {
	subtype, _, _ = strings.Cut(subtype, "+")
	if isAlnum(subtype) {
		return "." + subtype
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// extensionOf returns the lower-cased extension of a client supplied filename.
func extensionOf(originalName string) string {
	return strings.ToLower(filepath.Ext(filepath.Base(filepath.ToSlash(originalName))))
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
