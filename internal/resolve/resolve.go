// Package resolve locates declarations inside coffeedoc module records.
package resolve

import (
	"path"
	"regexp"
	"strings"

	"github.com/agentflare-ai/coffee-docmd/internal/coffeedoc"
)

// Field names a list of child records on a module or class.
type Field int

const (
	FieldClasses Field = iota
	FieldFunctions
	FieldInstanceMethods
	FieldStaticMethods
)

func (f Field) String() string {
	switch f {
	case FieldClasses:
		return "classes"
	case FieldFunctions:
		return "functions"
	case FieldInstanceMethods:
		return "instancemethods"
	case FieldStaticMethods:
		return "staticmethods"
	default:
		return "unknown"
	}
}

// Find returns the first record in container's field whose own dotted name
// equals the trailing segments of target. Records are tagged with the kind
// the field holds. If two records match, the one declared first wins; no
// other tie-break is defined.
//
// A nil container, a field the container does not have, or no matching
// record all report false.
func Find(container coffeedoc.Object, field Field, target coffeedoc.ObjectPath) (coffeedoc.Object, bool) {
	for _, child := range children(container, field) {
		if target.HasSuffix(coffeedoc.SplitPath(child.ObjectName())) {
			return child, true
		}
	}
	return nil, false
}

// children returns the records held in field of container, in declaration
// order.
func children(container coffeedoc.Object, field Field) []coffeedoc.Object {
	var out []coffeedoc.Object
	switch c := container.(type) {
	case *coffeedoc.Module:
		if c == nil {
			return nil
		}
		switch field {
		case FieldClasses:
			for _, cls := range c.Classes {
				out = append(out, cls)
			}
		case FieldFunctions:
			out = callables(coffeedoc.KindFunction, c.Functions)
		}
	case *coffeedoc.Class:
		if c == nil {
			return nil
		}
		switch field {
		case FieldInstanceMethods:
			out = callables(coffeedoc.KindMethod, c.InstanceMethods)
		case FieldStaticMethods:
			out = callables(coffeedoc.KindStaticMethod, c.StaticMethods)
		}
	}
	return out
}

func callables(kind coffeedoc.Kind, fns []*coffeedoc.Function) []coffeedoc.Object {
	out := make([]coffeedoc.Object, 0, len(fns))
	for _, fn := range fns {
		out = append(out, coffeedoc.NewCallable(kind, fn))
	}
	return out
}

// OwningClass returns the first class in mod whose dotted name is a prefix of
// target. Methods are looked up inside it.
func OwningClass(mod *coffeedoc.Module, target coffeedoc.ObjectPath) (*coffeedoc.Class, bool) {
	if mod == nil {
		return nil, false
	}
	for _, cls := range mod.Classes {
		if target.HasPrefix(coffeedoc.SplitPath(cls.Name)) {
			return cls, true
		}
	}
	return nil, false
}

var sourceSuffix = regexp.MustCompile(`(\.js|\.coffee)$`)

// ParentFQN qualifies the parent class name used in a subclass declaration
// of mod. A class declared in mod itself is qualified with mod's name.
// Otherwise the first dependency alias containing parent as a substring
// supplies the module; relative import paths are resolved against mod's
// directory. Names that cannot be qualified are returned unchanged.
//
// The alias match is a substring test, so an alias such as "ButtonBase"
// also matches parent "Button" if it comes first.
func ParentFQN(mod *coffeedoc.Module, parent string) string {
	if mod == nil || parent == "" {
		return parent
	}
	for _, cls := range mod.Classes {
		if cls.Name == parent {
			return mod.Name + parent
		}
	}
	if mod.Deps == nil {
		return parent
	}
	for pair := mod.Deps.Oldest(); pair != nil; pair = pair.Next() {
		if !strings.Contains(pair.Key, parent) {
			continue
		}
		dep := pair.Value
		if strings.HasPrefix(dep, ".") {
			return relativeModule(mod.Path, dep) + parent
		}
		return dep + coffeedoc.ModSep + parent
	}
	return parent
}

func relativeModule(modPath, dep string) string {
	dep = sourceSuffix.ReplaceAllString(dep, "")
	return path.Clean(path.Join(path.Dir(modPath), dep)) + coffeedoc.ModSep
}
