package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope required for CVS control-plane calls.
const scope = "https://www.googleapis.com/auth/cloud-platform"

var saEmailPattern = regexp.MustCompile(`^[\w.-]+@[\w-]+\.iam\.gserviceaccount\.com$`)

// Source bundles the bearer token source with the project id embedded in
// the credentials, when one is present.
type Source struct {
	TokenSource oauth2.TokenSource
	ProjectID   string
}

// NewTokenSource mints a token source from service-account credentials,
// given as one of:
//  1. a path to a JSON key file
//  2. a base64-encoded JSON key
//  3. a service-account principal email, resolved through the metadata
//     server (workload identity / impersonation)
func NewTokenSource(ctx context.Context, credentials string) (Source, error) {
	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		return Source{}, errors.New("auth: service account credentials are required")
	}

	if data, err := os.ReadFile(credentials); err == nil {
		log.Debug().Str("action", "auth_new").Str("kind", "keyfile").Msg("credentials loaded")
		return fromJSONKey(ctx, data)
	}

	if data, err := base64.StdEncoding.DecodeString(credentials); err == nil && json.Valid(data) {
		log.Debug().Str("action", "auth_new").Str("kind", "base64").Msg("credentials decoded")
		return fromJSONKey(ctx, data)
	}

	if saEmailPattern.MatchString(credentials) {
		log.Debug().Str("action", "auth_new").Str("kind", "principal").Msg("using metadata token source")
		return Source{TokenSource: google.ComputeTokenSource(credentials, scope)}, nil
	}

	return Source{}, errors.New("auth: credentials are neither a readable key file, a base64 JSON key, nor a service-account email")
}

func fromJSONKey(ctx context.Context, data []byte) (Source, error) {
	cfg, err := google.JWTConfigFromJSON(data, scope)
	if err != nil {
		return Source{}, err
	}
	var key struct {
		ProjectID string `json:"project_id"`
	}
	_ = json.Unmarshal(data, &key)
	return Source{TokenSource: cfg.TokenSource(ctx), ProjectID: key.ProjectID}, nil
}
