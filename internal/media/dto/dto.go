package dto

import "io"

type MediaFilters struct {
	Folder   string `json:"folder"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// UploadInput is one file headed for the media library.
type UploadInput struct {
	Folder      string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	UploadedBy  string
}
