package module

import (
	"strings"

	"producescan/internal/platform/config"
	shttp "producescan/internal/services/scan/http"
)

// Asset backends for CORE_ASSETS_BACKEND
const (
	AssetsFS   = "fs"
	AssetsS3   = "s3"
	AssetsNone = "none"
)

// AssetOptions selects and configures image storage
type AssetOptions struct {
	Backend string

	// fs
	Dir string

	// s3
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
	PathStyle bool

	// PublicBaseURL prefixes returned locations for either backend
	PublicBaseURL string
}

// Options controls the scan entry points
type Options struct {
	MaxUploadBytes int64
	// ShelfLifePath overrides the embedded shelf life table
	ShelfLifePath string
	// RequireAuth rejects anonymous scans when an auth port is wired
	RequireAuth bool
	// MaxInFlight caps concurrent scan requests, 0 means no cap
	MaxInFlight int
	Assets      AssetOptions
}

// FromConfig reads CORE_API_MAX_UPLOAD_BYTES, CORE_SCAN_*, CORE_SHELFLIFE_* and CORE_ASSETS_*
func FromConfig(cfg config.Conf) Options {
	api := cfg.Prefix("CORE_API_")
	sc := cfg.Prefix("CORE_SCAN_")
	sl := cfg.Prefix("CORE_SHELFLIFE_")
	ac := cfg.Prefix("CORE_ASSETS_")

	return Options{
		MaxUploadBytes: int64(api.MayInt("MAX_UPLOAD_BYTES", int(shttp.DefaultMaxUpload))),
		ShelfLifePath:  sl.MayString("PATH", ""),
		RequireAuth:    sc.MayBool("REQUIRE_AUTH", false),
		MaxInFlight:    sc.MayInt("MAX_INFLIGHT", 0),
		Assets: AssetOptions{
			Backend:       strings.ToLower(ac.MayEnum("BACKEND", AssetsFS, AssetsFS, AssetsS3, AssetsNone)),
			Dir:           ac.MayString("DIR", "uploads"),
			Bucket:        ac.MayString("BUCKET", ""),
			Endpoint:      ac.MayString("ENDPOINT", ""),
			Region:        ac.MayString("REGION", "auto"),
			AccessKey:     ac.MayString("ACCESS_KEY", ""),
			SecretKey:     ac.MayString("SECRET_KEY", ""),
			Prefix:        ac.MayString("PREFIX", ""),
			PathStyle:     ac.MayBool("PATH_STYLE", false),
			PublicBaseURL: ac.MayString("PUBLIC_BASE_URL", ""),
		},
	}
}
