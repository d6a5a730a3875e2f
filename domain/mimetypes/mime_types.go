package mimetypes

import (
	"path/filepath"
	"slices"
	"strings"
)

type MIME string

const (
	Unknown        MIME = "unknown"
	TextPlain      MIME = "text/plain"
	ApplicationPDF MIME = "application/pdf"
	ImagePNG       MIME = "image/png"
	ImageJPEG      MIME = "image/jpeg"
)

// allowed maps the accepted transfer extensions to their content type.
var allowed = map[string]MIME{
	".txt": TextPlain,
	".pdf": ApplicationPDF,
	".jpg": ImageJPEG,
	".png": ImagePNG,
}

// FromFilename resolves the content type of filename from its extension.
// Extensions are matched case-insensitively. Unlisted extensions return Unknown.
func FromFilename(filename string) (MIME, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	mt, ok := allowed[ext]
	if !ok {
		return Unknown, false
	}
	return mt, true
}

// extensions is the order the accepted types are advertised to clients in.
var extensions = []string{".txt", ".pdf", ".jpg", ".png"}

func Extensions() []string {
	return slices.Clone(extensions)
}
