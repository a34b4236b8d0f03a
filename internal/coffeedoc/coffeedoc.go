// Package coffeedoc models the JSON records produced by the coffeedoc
// analyzer: modules, classes, and the functions and methods they declare.
package coffeedoc

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ModSep separates a module name from the object path inside it.
const ModSep = "::"

// SourceExt is the file extension of CoffeeScript modules.
const SourceExt = ".coffee"

// Kind identifies the type of a documented object.
type Kind int

const (
	KindModule Kind = iota
	KindClass
	KindFunction
	KindMethod
	KindStaticMethod
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindStaticMethod:
		return "staticmethod"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name (with or without the "coffee" prefix used by
// directive names) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimPrefix(strings.ToLower(s), "coffee") {
	case "module":
		return KindModule, nil
	case "class":
		return KindClass, nil
	case "function":
		return KindFunction, nil
	case "method":
		return KindMethod, nil
	case "staticmethod":
		return KindStaticMethod, nil
	}
	return 0, fmt.Errorf("unknown object kind %q", s)
}

// Deps maps a local alias to the import path it was required from, in the
// order the analyzer emitted them.
type Deps = orderedmap.OrderedMap[string, string]

// NewDeps returns an empty dependency table.
func NewDeps() *Deps {
	return orderedmap.New[string, string]()
}

// Function describes a function, instance method or static method.
type Function struct {
	Name      string   `json:"name"`
	Params    []string `json:"params"`
	Docstring string   `json:"docstring"`
}

// Class describes a class declaration.
type Class struct {
	Name            string      `json:"name"`
	Docstring       string      `json:"docstring"`
	Parent          string      `json:"parent,omitempty"`
	StaticMethods   []*Function `json:"staticmethods"`
	InstanceMethods []*Function `json:"instancemethods"`
}

// Module describes one source file.
type Module struct {
	Path      string      `json:"path"`
	Name      string      `json:"name"`
	Docstring string      `json:"docstring"`
	Classes   []*Class    `json:"classes"`
	Functions []*Function `json:"functions"`
	Deps      *Deps       `json:"deps"`
}

// Blank returns a placeholder module with every list empty. It stands in for
// modules whose source file does not exist.
func Blank(filename string) *Module {
	return &Module{
		Path:      filename,
		Name:      ModuleName(filename),
		Classes:   []*Class{},
		Functions: []*Function{},
		Deps:      NewDeps(),
	}
}

// ModuleName derives a module's qualified name from its source path:
// "a/b.coffee" becomes "a/b::".
func ModuleName(path string) string {
	return strings.TrimSuffix(path, SourceExt) + ModSep
}

// Filename returns the source filename for a module name.
func Filename(modname string) string {
	return modname + SourceExt
}
