package domain

import (
	"errors"
	"time"
)

var ErrHistoryDisabled = errors.New("export history is not configured")

// ExportRecord is the metadata of one generated PDF. The PDF itself is
// never stored.
type ExportRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FileName  string    `json:"file_name"`
	Theme     string    `json:"theme"`
	Pages     int       `json:"pages"`
	Bytes     int64     `json:"bytes"`
	Warnings  []string  `json:"warnings"`
	CreatedAt time.Time `json:"created_at"`
}
