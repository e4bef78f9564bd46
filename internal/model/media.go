package model

import (
	"path"
	"strings"
	"time"
)

const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

type ProductMedia struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	MediaType string `db:"media_type" json:"media_type"`
	URL       string `db:"url" json:"url"`
	AltText   string `db:"alt_text" json:"alt_text"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
}

// MediaAsset indexes a file uploaded through the admin media library.
type MediaAsset struct {
	ID          string    `db:"id" json:"id"`
	Folder      string    `db:"folder" json:"folder"`
	FileName    string    `db:"file_name" json:"file_name"`
	ObjectKey   string    `db:"object_key" json:"object_key"`
	URL         string    `db:"url" json:"url"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	UploadedBy  string    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

var (
	imageExts = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "svg": true, "avif": true}
	videoExts = map[string]bool{"mp4": true, "webm": true, "mov": true, "avi": true, "mkv": true}
)

// MediaTypeFromName classifies a URL or file name by its extension.
func MediaTypeFromName(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	switch {
	case imageExts[ext]:
		return MediaImage
	case videoExts[ext]:
		return MediaVideo
	default:
		return MediaDocument
	}
}
