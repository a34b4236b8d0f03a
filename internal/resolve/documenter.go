package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentflare-ai/coffee-docmd/internal/coffeedoc"
)

// ErrNotFound is returned when a name does not resolve to a record.
var ErrNotFound = errors.New("object not found")

// ModuleLoader loads module records by module name.
type ModuleLoader interface {
	Module(ctx context.Context, modname string) (*coffeedoc.Module, error)
}

// Documenter describes how one kind of object is resolved: where its parent
// container comes from and which list of that container to search.
type Documenter struct {
	Kind  coffeedoc.Kind
	Field Field
	// Parent returns the container to search, or nil when there is none.
	Parent func(mod *coffeedoc.Module, path coffeedoc.ObjectPath) coffeedoc.Object
	// Members are the fields whose records are documented as children.
	Members []Field
}

func moduleParent(mod *coffeedoc.Module, _ coffeedoc.ObjectPath) coffeedoc.Object {
	return mod
}

func classParent(mod *coffeedoc.Module, path coffeedoc.ObjectPath) coffeedoc.Object {
	if cls, ok := OwningClass(mod, path); ok {
		return cls
	}
	return nil
}

var documenters = map[coffeedoc.Kind]Documenter{
	coffeedoc.KindModule: {
		Kind:    coffeedoc.KindModule,
		Members: []Field{FieldClasses, FieldFunctions},
	},
	coffeedoc.KindClass: {
		Kind:    coffeedoc.KindClass,
		Field:   FieldClasses,
		Parent:  moduleParent,
		Members: []Field{FieldStaticMethods, FieldInstanceMethods},
	},
	coffeedoc.KindFunction: {
		Kind:   coffeedoc.KindFunction,
		Field:  FieldFunctions,
		Parent: moduleParent,
	},
	coffeedoc.KindMethod: {
		Kind:   coffeedoc.KindMethod,
		Field:  FieldInstanceMethods,
		Parent: classParent,
	},
	coffeedoc.KindStaticMethod: {
		Kind:   coffeedoc.KindStaticMethod,
		Field:  FieldStaticMethods,
		Parent: classParent,
	},
}

// For returns the documenter for kind.
func For(kind coffeedoc.Kind) (Documenter, bool) {
	d, ok := documenters[kind]
	return d, ok
}

// Import loads the module for name and resolves name inside it. It returns
// the record and the module it was found in; a failed lookup wraps
// ErrNotFound.
func Import(ctx context.Context, loader ModuleLoader, kind coffeedoc.Kind, name coffeedoc.Name) (coffeedoc.Object, *coffeedoc.Module, error) {
	doc, ok := documenters[kind]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported object kind %s", kind)
	}
	mod, err := loader.Module(ctx, name.Module)
	if err != nil {
		return nil, nil, err
	}
	if doc.Parent == nil {
		return mod, mod, nil
	}
	container := doc.Parent(mod, name.Path)
	if container == nil {
		return nil, mod, fmt.Errorf("%s %s: %w", kind, name, ErrNotFound)
	}
	obj, ok := Find(container, doc.Field, name.Path)
	if !ok {
		return nil, mod, fmt.Errorf("%s %s: %w", kind, name, ErrNotFound)
	}
	return obj, mod, nil
}

// Member is a child record together with its full name.
type Member struct {
	Name   coffeedoc.Name
	Object coffeedoc.Object
}

// Members lists the documented children of obj, field by field in the
// order its documenter names them. name is obj's own name.
func Members(obj coffeedoc.Object, name coffeedoc.Name) []Member {
	if obj == nil {
		return nil
	}
	var members []Member
	for _, field := range documenters[obj.Kind()].Members {
		for _, child := range children(obj, field) {
			members = append(members, Member{Name: name.Child(child.ObjectName()), Object: child})
		}
	}
	return members
}
