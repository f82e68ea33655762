package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func projectRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve project root").
			WithCause(err)
	}
	return abs, nil
}
