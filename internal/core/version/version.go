// Package version exposes build metadata stamped in at link time
package version

// BuildInfo describes the running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`

	// LabelSet identifies the classifier class table compiled into the binary
	LabelSet string `json:"label_set"`
}

// Info returns the build information for the API binary
//
//	go build -ldflags "-X 'producescan/internal/core/version.version=v0.1.0' \
//	  -X 'producescan/internal/core/version.commit=abcd' \
//	  -X 'producescan/internal/core/version.date=2026-10-01'"
func Info() BuildInfo { return For("producescan-api") }

// For returns build information labelled with the given service name
func For(service string) BuildInfo {
	return BuildInfo{
		Service:  service,
		Version:  version,
		Commit:   commit,
		Date:     date,
		LabelSet: labelSet,
	}
}

var (
	version  = "dev"
	commit   = "none"
	date     = "unknown"
	labelSet = "produce-v1"
)
