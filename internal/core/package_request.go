package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"vibranium/internal/types"
)

const versionSeparator = "=="

// ParsePackageRequest parses "name" or "name==version". An unqualified name
// requests the latest version.
func ParsePackageRequest(spec string) (types.PackageRequest, error) {
	trimmed := strings.TrimSpace(spec)
	name, version, qualified := strings.Cut(trimmed, versionSeparator)
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if name == "" {
		return types.PackageRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package spec %q: name is empty", spec))
	}
	if !qualified {
		version = types.VersionLatest
	}
	if version == "" {
		return types.PackageRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package spec %q: version is empty", spec))
	}
	if strings.Contains(version, versionSeparator) {
		return types.PackageRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package spec %q: more than one version", spec))
	}
	return types.PackageRequest{Name: name, Version: version}, nil
}

func ParsePackageRequests(specs []string) ([]types.PackageRequest, error) {
	requests := make([]types.PackageRequest, 0, len(specs))
	for _, spec := range specs {
		req, err := ParsePackageRequest(spec)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// RequestsFromDependencies turns the manifest's dependency map into
// requests, ordered by name.
func RequestsFromDependencies(deps map[string]string) []types.PackageRequest {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	requests := make([]types.PackageRequest, 0, len(names))
	for _, name := range names {
		version := strings.TrimSpace(deps[name])
		if version == "" {
			version = types.VersionLatest
		}
		requests = append(requests, types.PackageRequest{Name: name, Version: version})
	}
	return requests
}
