package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourcePath identifies where a SourceFile's text came from: either the
// canonical path of an on-disk file, or a virtual (in-memory) source, such
// as a REPL line or a test fixture.
//
// SourcePath is only ever constructed by a SourceMap, which is what keeps
// its Local variant's path field canonicalized; that invariant is what lets
// SourcePath double as a map key for deduplicating loads of the same file.
// SourcePath is comparable and usable as a map key.
type SourcePath struct {
	kind    sourcePathKind
	path    string // canonical absolute path, set only when kind == pathLocal.
	name    string // optional name, set only when kind == pathVirtual.
	hasName bool
	uid     uint32 // set only when kind == pathVirtual.
}

type sourcePathKind uint8

const (
	pathLocal sourcePathKind = iota
	pathVirtual
)

func localPath(canonical string) SourcePath {
	return SourcePath{kind: pathLocal, path: canonical}
}

func virtualPath(name *string, uid uint32) SourcePath {
	sp := SourcePath{kind: pathVirtual, uid: uid}
	if name != nil {
		sp.name = *name
		sp.hasName = true
	}
	return sp
}

// IsLocal reports whether this path identifies an on-disk file.
func (p SourcePath) IsLocal() bool {
	return p.kind == pathLocal
}

// IsVirtual reports whether this path identifies an in-memory source.
func (p SourcePath) IsVirtual() bool {
	return p.kind == pathVirtual
}

// ReadableName renders p the way a diagnostic should display it: for a
// local file, relative to the current working directory when possible,
// falling back to the canonicalized absolute path; for a virtual file, the
// given name, or "virtual #<uid>" if it has none.
func (p SourcePath) ReadableName() string {
	switch p.kind {
	case pathLocal:
		if cwd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(cwd, p.path); err == nil {
				return rel
			}
		}
		return stripVerbatimUNCPrefix(p.path)
	case pathVirtual:
		if p.hasName {
			return p.name
		}
		return fmt.Sprintf("virtual #%d", p.uid)
	default:
		panic("source: unreachable SourcePath kind")
	}
}

// stripVerbatimUNCPrefix removes the Windows verbatim-path prefix (e.g.
// `\\?\C:\foo` -> `C:\foo`) that filepath.EvalSymlinks can leave in place on
// Windows; these are rarely accepted by non-Microsoft tooling, so they make
// for confusing diagnostic output.
func stripVerbatimUNCPrefix(path string) string {
	const prefix = `\\?\`
	if strings.HasPrefix(path, prefix) {
		return path[len(prefix):]
	}
	return path
}
