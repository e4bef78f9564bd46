package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	mediadto "github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/google/uuid"
)

var (
	ErrNotImage      = errors.New("only images can be primary")
	ErrIndexRange    = errors.New("media index out of range")
	ErrEmptyMediaURL = errors.New("media url is required")
)

// Uploader stores a file in the media library and returns the indexed asset.
type Uploader interface {
	Upload(ctx context.Context, input *mediadto.UploadInput) (*model.MediaAsset, error)
}

// MediaList is the ordered media set of one product. SortOrder always equals the
// slice index, and at most one image is primary.
type MediaList struct {
	items    []model.ProductMedia
	uploader Uploader
	folder   string
}

// NewMediaList takes ownership of a copy of items ordered by their current SortOrder
// position in the slice. Uploads go to folder through uploader, which may be nil
// when only URL entries are edited.
func NewMediaList(items []model.ProductMedia, uploader Uploader, folder string) *MediaList {
	l := &MediaList{uploader: uploader, folder: folder}
	l.items = make([]model.ProductMedia, len(items))
	copy(l.items, items)
	l.normalize()
	return l
}

func (l *MediaList) Items() []model.ProductMedia {
	out := make([]model.ProductMedia, len(l.items))
	copy(out, l.items)
	return out
}

func (l *MediaList) Len() int { return len(l.items) }

// Primary returns the index of the primary image, or -1.
func (l *MediaList) Primary() int {
	for i, m := range l.items {
		if m.IsPrimary {
			return i
		}
	}
	return -1
}

// AddURL appends an external reference, classifying it by extension.
func (l *MediaList) AddURL(url, altText string) (model.ProductMedia, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return model.ProductMedia{}, ErrEmptyMediaURL
	}
	item := model.ProductMedia{
		ID:        uuid.NewString(),
		MediaType: model.MediaTypeFromName(url),
		URL:       url,
		AltText:   altText,
	}
	return l.appendItem(item), nil
}

// AddFile uploads r into the media library and appends the stored asset. A failed
// upload leaves the list untouched.
func (l *MediaList) AddFile(ctx context.Context, fileName, contentType string, r io.Reader, size int64, uploadedBy string) (model.ProductMedia, error) {
	if l.uploader == nil {
		return model.ProductMedia{}, errors.New("media uploads are not configured")
	}
	asset, err := l.uploader.Upload(ctx, &mediadto.UploadInput{
		Folder:      l.folder,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		Body:        r,
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		return model.ProductMedia{}, fmt.Errorf("upload %s: %w", fileName, err)
	}

	mediaType := model.MediaTypeFromName(fileName)
	if strings.HasPrefix(contentType, "image/") {
		mediaType = model.MediaImage
	} else if strings.HasPrefix(contentType, "video/") {
		mediaType = model.MediaVideo
	}

	item := model.ProductMedia{
		ID:        uuid.NewString(),
		MediaType: mediaType,
		URL:       asset.URL,
		AltText:   strings.TrimSuffix(fileName, extOf(fileName)),
	}
	return l.appendItem(item), nil
}

func (l *MediaList) appendItem(item model.ProductMedia) model.ProductMedia {
	item.SortOrder = len(l.items)
	item.IsPrimary = item.MediaType == model.MediaImage && l.Primary() < 0
	l.items = append(l.items, item)
	return item
}

func (l *MediaList) MoveUp(i int) bool {
	if i <= 0 || i >= len(l.items) {
		return false
	}
	l.items[i-1], l.items[i] = l.items[i], l.items[i-1]
	l.reindex()
	return true
}

func (l *MediaList) MoveDown(i int) bool {
	if i < 0 || i >= len(l.items)-1 {
		return false
	}
	l.items[i], l.items[i+1] = l.items[i+1], l.items[i]
	l.reindex()
	return true
}

// Remove drops item i. When it was primary the first remaining image takes over.
func (l *MediaList) Remove(i int) (model.ProductMedia, error) {
	if i < 0 || i >= len(l.items) {
		return model.ProductMedia{}, ErrIndexRange
	}
	removed := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.reindex()
	if removed.IsPrimary {
		l.promoteFirstImage()
	}
	return removed, nil
}

func (l *MediaList) SetPrimary(i int) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexRange
	}
	if l.items[i].MediaType != model.MediaImage {
		return ErrNotImage
	}
	for j := range l.items {
		l.items[j].IsPrimary = j == i
	}
	return nil
}

// SetAltText updates the caption of item i.
func (l *MediaList) SetAltText(i int, alt string) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexRange
	}
	l.items[i].AltText = alt
	return nil
}

func (l *MediaList) promoteFirstImage() {
	for j := range l.items {
		if l.items[j].MediaType == model.MediaImage {
			l.items[j].IsPrimary = true
			return
		}
	}
}

func (l *MediaList) reindex() {
	for j := range l.items {
		l.items[j].SortOrder = j
	}
}

// normalize repairs loaded state: contiguous sort order, primary only on images,
// at most one primary.
func (l *MediaList) normalize() {
	l.reindex()
	seen := false
	for j := range l.items {
		m := &l.items[j]
		if m.MediaType == "" {
			m.MediaType = model.MediaTypeFromName(m.URL)
		}
		if m.IsPrimary && (seen || m.MediaType != model.MediaImage) {
			m.IsPrimary = false
		}
		if m.IsPrimary {
			seen = true
		}
	}
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}
