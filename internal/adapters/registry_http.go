package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"vibranium/internal/ports"
	"vibranium/internal/shared"
	"vibranium/internal/types"
)

const defaultRegistryURL = "http://localhost:3000/api/"
const defaultRegistryTimeout = 30 * time.Second

type RegistryConfig struct {
	BaseURL    string
	TimeoutSec int
}

// RegistryHTTPAdapter talks to the package registry. The registry signals
// lookup failures through sentinel bodies rather than status codes.
type RegistryHTTPAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewRegistryHTTPAdapter(cfg RegistryConfig) RegistryHTTPAdapter {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultRegistryURL
	}
	timeout := defaultRegistryTimeout
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}
	return RegistryHTTPAdapter{
		BaseURL: base,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (a RegistryHTTPAdapter) Fetch(ctx context.Context, name string, version string) ([]byte, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(version) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name and version are required")
	}
	endpoint := a.installURL(name, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry request").
			WithCause(err)
	}
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	log.Debug().Str("url", endpoint).Msg("registry install request")
	resp, err := client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("registry request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read registry response").
			WithCause(err)
	}

	switch string(body) {
	case types.RegistrySentinelMissing:
		return nil, types.NewPackageMissingError(name, version)
	case types.RegistrySentinelNotFound:
		return nil, types.NewPackageNotFoundError(name, version)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("registry returned an unexpected status").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, string(body)))
	}
	return body, nil
}

func (a RegistryHTTPAdapter) installURL(name string, version string) string {
	base := strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	return fmt.Sprintf("%s/install/%s/%s", base, url.PathEscape(name), url.PathEscape(version))
}

var _ ports.RegistryPort = RegistryHTTPAdapter{}
