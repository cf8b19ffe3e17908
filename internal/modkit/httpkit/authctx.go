package httpkit

import (
	"net/http"

	perrs "producescan/internal/platform/errors"
	pnet "producescan/internal/platform/net"
)

// User returns the authenticated user id from the request context
// unauthorized when the auth middleware attached nobody
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}
