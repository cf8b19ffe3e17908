package module

import (
	"context"

	"producescan/internal/adapters/assets/fsstore"
	"producescan/internal/adapters/assets/s3store"
	perr "producescan/internal/platform/errors"
	"producescan/internal/services/scan/domain"
)

// OpenAssets builds the configured asset store
// the none backend returns a nil store and no error
func OpenAssets(ctx context.Context, o AssetOptions) (domain.AssetStore, error) {
	switch o.Backend {
	case AssetsNone:
		return nil, nil
	case AssetsS3:
		s, err := s3store.New(ctx, s3store.Options{
			Bucket:        o.Bucket,
			Endpoint:      o.Endpoint,
			Region:        o.Region,
			AccessKey:     o.AccessKey,
			SecretKey:     o.SecretKey,
			Prefix:        o.Prefix,
			PublicBaseURL: o.PublicBaseURL,
			PathStyle:     o.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case AssetsFS, "":
		s, err := fsstore.New(o.Dir, o.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, perr.WithField(perr.InvalidArgf("unknown asset backend %q", o.Backend), "backend")
	}
}
