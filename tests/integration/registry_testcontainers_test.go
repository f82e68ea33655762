//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"vibranium/internal/adapters"
	"vibranium/internal/app"
	"vibranium/internal/types"
)

func TestRegistryInstallWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers registry test in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startRegistryMock(ctx, t)
	t.Cleanup(cleanup)

	cfg := app.DefaultConfig()
	cfg.Registry = adapters.RegistryConfig{BaseURL: endpoint + "/api/", TimeoutSec: 10}
	service := app.NewService(cfg)
	root := t.TempDir()
	_, err := service.Init(ctx, app.InitRequest{Root: root})
	require.NoError(t, err)

	result, err := service.Install(ctx, app.InstallRequest{Root: root, Packages: []string{"std", "io==0.3"}, Save: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Report.Count(types.InstallOutcomeInstalled))

	content, err := os.ReadFile(filepath.Join(root, types.LedgerDirName, "io.wacc"))
	require.NoError(t, err)
	assert.Equal(t, "begin\n  skip\nend\n", string(content))

	again, err := service.Install(ctx, app.InstallRequest{Root: root})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Report.Count(types.InstallOutcomeAlreadyPresent), "std is recorded as latest")
	assert.Equal(t, 1, again.Report.Count(types.InstallOutcomeInstalled), "io==0.3 never matches the latest record")

	_, err = service.Install(ctx, app.InstallRequest{Root: root, Packages: []string{"gone"}})
	var toolErr *types.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, types.ErrorKindPackageMissing, toolErr.Kind)

	_, err = service.Install(ctx, app.InstallRequest{Root: root, Packages: []string{"foo==2.0"}})
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, types.ErrorKindPackageNotFound, toolErr.Kind)

	ledger, err := service.Ledger.Load(root)
	require.NoError(t, err)
	names := make([]string, 0, len(ledger))
	for name := range ledger {
		names = append(names, name)
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"io", "std"}, names); diff != "" {
		t.Fatalf("unexpected ledger names (-want +got):\n%s", diff)
	}
}

func startRegistryMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"3000/tcp"},
		Cmd:          []string{"python", "-c", registryMockScript},
		WaitingFor:   wait.ForListeningPort("3000/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3000/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

const registryMockScript = `
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

PACKAGES = {
    ("std", "latest"): "begin\n  skip\nend\n",
    ("io", "0.3"): "begin\n  skip\nend\n",
}
MISSING = {("gone", "latest")}

class Handler(BaseHTTPRequestHandler):
    def do_POST(self):
        parts = self.path.strip("/").split("/")
        if len(parts) != 4 or parts[:2] != ["api", "install"]:
            self.send_response(404)
            self.end_headers()
            return
        key = (parts[2], parts[3])
        if key in MISSING:
            body = "missing"
        else:
            body = PACKAGES.get(key, "not found")
        self.send_response(200)
        self.send_header("Content-Type", "text/plain")
        self.end_headers()
        self.wfile.write(body.encode("utf-8"))

    def log_message(self, format, *args):
        return

def main():
    server = ThreadingHTTPServer(("0.0.0.0", 3000), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
