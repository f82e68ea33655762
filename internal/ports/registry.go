package ports

import "context"

type RegistryPort interface {
	// Fetch returns the raw package content for name at version.
	Fetch(ctx context.Context, name string, version string) ([]byte, error)
}
