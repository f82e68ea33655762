package core

import (
	debversion "github.com/knqyf263/go-deb-version"
)

type versionChange string

const (
	versionUpgrade   versionChange = "upgrade"
	versionDowngrade versionChange = "downgrade"
	versionReplace   versionChange = "replace"
)

// classifyVersionChange orders two package versions using Debian version
// semantics. Versions that do not parse, such as "latest", can only be
// replaced.
func classifyVersionChange(from string, to string) versionChange {
	v1, err := debversion.NewVersion(from)
	if err != nil {
		return versionReplace
	}
	v2, err := debversion.NewVersion(to)
	if err != nil {
		return versionReplace
	}
	switch cmp := v1.Compare(v2); {
	case cmp < 0:
		return versionUpgrade
	case cmp > 0:
		return versionDowngrade
	default:
		return versionReplace
	}
}
