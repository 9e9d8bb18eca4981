package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PlanRoots canonicalizes both roots and returns the subtrees that must be
// walked so every file under either root is visited exactly once. Equal or
// nested roots collapse to the outermost one.
func PlanRoots(a, b string) ([]string, error) {
	ca, err := canonicalize(a)
	if err != nil {
		return nil, err
	}
	cb, err := canonicalize(b)
	if err != nil {
		return nil, err
	}

	switch {
	case contains(ca, cb):
		return []string{ca}, nil
	case contains(cb, ca):
		return []string{cb}, nil
	default:
		return []string{ca, cb}, nil
	}
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Kind: KindPathResolution, Path: path, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &Error{Kind: KindPathResolution, Path: path, Err: err}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", &Error{Kind: KindPathResolution, Path: path, Err: err}
	}
	if !info.IsDir() {
		return "", &Error{
			Kind: KindPathResolution,
			Path: path,
			Err:  fmt.Errorf("%s: %w", resolved, errNotDir),
		}
	}
	return resolved, nil
}

var errNotDir = errors.New("not a directory")

// contains reports whether child equals parent or lies beneath it. The
// comparison is per path component, so /a/bc is not inside /a/b.
func contains(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
