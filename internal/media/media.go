// Package media uploads binary assets to the external media host and hands
// back durable URLs. The backend never serves file bytes itself.
package media

import (
	"context"
	"io"
)

// Kind selects the host-side resource pipeline for an upload.
type Kind string

const (
	// KindAuto lets the host sniff the payload; used for audio.
	KindAuto Kind = "auto"
	// KindImage forces the image pipeline; used for thumbnails.
	KindImage Kind = "image"
)

// Uploader stores one file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, kind Kind) (string, error)
}
