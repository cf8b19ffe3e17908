package domain

import "context"

// Pipeline turns image bytes into one consistent outcome
// Scan is total: corrupt input and failing collaborators degrade instead of erroring
type Pipeline interface {
	Scan(ctx context.Context, in Input) Outcome
	// Capture records the camera intake line then scans the frame
	Capture(ctx context.Context, in Input) Outcome
}

// AssetStore keeps a copy of scanned images
type AssetStore interface {
	// Put stores body under key and returns where it can be found
	Put(ctx context.Context, key string, body []byte, contentType string) (location string, err error)
}
