package domain

import "io"

// PendingImage is a validated upload that has not been written to media storage yet.
type PendingImage struct {
	Filename  string
	MimeType  string
	SizeBytes int64
	Width     int
	Height    int
	Data      io.Reader
}
