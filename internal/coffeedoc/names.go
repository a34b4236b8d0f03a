package coffeedoc

import (
	"fmt"
	"strings"
)

// ObjectPath is a qualified name split on ".".
type ObjectPath []string

// SplitPath splits a dotted name into an ObjectPath. The empty string yields
// an empty path.
func SplitPath(name string) ObjectPath {
	if name == "" {
		return nil
	}
	return ObjectPath(strings.Split(name, "."))
}

// HasSuffix reports whether suffix equals the trailing segments of p.
func (p ObjectPath) HasSuffix(suffix ObjectPath) bool {
	if len(suffix) == 0 || len(suffix) > len(p) {
		return false
	}
	tail := p[len(p)-len(suffix):]
	for i := range suffix {
		if tail[i] != suffix[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix equals the leading segments of p.
func (p ObjectPath) HasPrefix(prefix ObjectPath) bool {
	if len(prefix) == 0 || len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (p ObjectPath) String() string {
	return strings.Join(p, ".")
}

// Name is a parsed object name: the module it lives in and its path inside
// that module.
type Name struct {
	Module string
	Path   ObjectPath
}

// ParseName splits "mod/path::A.b" into its module and object path. Module
// names are taken whole, so kind must be known up front.
func ParseName(kind Kind, fullname string) (Name, error) {
	if fullname == "" {
		return Name{}, fmt.Errorf("empty object name")
	}
	if kind == KindModule {
		return Name{Module: fullname}, nil
	}
	modname, path, ok := strings.Cut(fullname, ModSep)
	if !ok || modname == "" || path == "" || strings.Contains(path, ModSep) {
		return Name{}, fmt.Errorf("%s name %q must look like module%sObject", kind, fullname, ModSep)
	}
	return Name{Module: modname, Path: SplitPath(path)}, nil
}

// Child returns the name of a member declared inside n. A dotted member
// name contributes one segment per part.
func (n Name) Child(member string) Name {
	path := make(ObjectPath, 0, len(n.Path)+1)
	path = append(path, n.Path...)
	path = append(path, SplitPath(member)...)
	return Name{Module: n.Module, Path: path}
}

func (n Name) String() string {
	if len(n.Path) == 0 {
		return n.Module
	}
	return n.Module + ModSep + n.Path.String()
}

// Signature formats a parameter list as "(a, b)".
func Signature(params []string) string {
	return "(" + strings.Join(params, ", ") + ")"
}
