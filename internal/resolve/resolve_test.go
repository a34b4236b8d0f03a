package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/coffee-docmd/internal/coffeedoc"
)

func deps(pairs ...string) *coffeedoc.Deps {
	d := coffeedoc.NewDeps()
	for i := 0; i+1 < len(pairs); i += 2 {
		d.Set(pairs[i], pairs[i+1])
	}
	return d
}

func TestFindSuffixMatch(t *testing.T) {
	foo := &coffeedoc.Class{Name: "Foo"}
	fooBar := &coffeedoc.Class{Name: "Foo.Bar"}
	mod := &coffeedoc.Module{Name: "Mod::", Classes: []*coffeedoc.Class{foo, fooBar}}

	obj, ok := Find(mod, FieldClasses, coffeedoc.ObjectPath{"Mod", "Foo", "Bar"})
	require.True(t, ok)
	assert.Same(t, fooBar, obj)
	assert.Equal(t, coffeedoc.KindClass, obj.Kind())

	obj, ok = Find(mod, FieldClasses, coffeedoc.ObjectPath{"Foo"})
	require.True(t, ok)
	assert.Same(t, foo, obj)
}

func TestFindFirstMatchWins(t *testing.T) {
	first := &coffeedoc.Function{Name: "run"}
	second := &coffeedoc.Function{Name: "run"}
	mod := &coffeedoc.Module{Functions: []*coffeedoc.Function{first, second}}

	obj, ok := Find(mod, FieldFunctions, coffeedoc.ObjectPath{"run"})
	require.True(t, ok)
	fn, isCallable := obj.(coffeedoc.Callable)
	require.True(t, isCallable)
	assert.Same(t, first, fn.Function)
	assert.Equal(t, coffeedoc.KindFunction, fn.Kind())
}

func TestFindTagsMethodKinds(t *testing.T) {
	cls := &coffeedoc.Class{
		Name:            "Widget",
		StaticMethods:   []*coffeedoc.Function{{Name: "create"}},
		InstanceMethods: []*coffeedoc.Function{{Name: "render", Params: []string{"el"}}},
	}

	obj, ok := Find(cls, FieldStaticMethods, coffeedoc.ObjectPath{"Widget", "create"})
	require.True(t, ok)
	assert.Equal(t, coffeedoc.KindStaticMethod, obj.Kind())

	obj, ok = Find(cls, FieldInstanceMethods, coffeedoc.ObjectPath{"Widget", "render"})
	require.True(t, ok)
	assert.Equal(t, coffeedoc.KindMethod, obj.Kind())
	assert.Equal(t, "(el)", obj.(coffeedoc.Callable).Signature())
	assert.Equal(t, "<coffee method render>", obj.String())
}

func TestFindNotFound(t *testing.T) {
	mod := &coffeedoc.Module{Classes: []*coffeedoc.Class{{Name: "Foo"}, {Name: "Foo.Bar"}}}
	var nilModule *coffeedoc.Module

	tests := []struct {
		name      string
		container coffeedoc.Object
		field     Field
		path      coffeedoc.ObjectPath
	}{
		{name: "no suffix matches", container: mod, field: FieldClasses, path: coffeedoc.ObjectPath{"Baz"}},
		{name: "candidate longer than path", container: mod, field: FieldClasses, path: coffeedoc.ObjectPath{"Bar"}},
		{name: "empty path", container: mod, field: FieldClasses, path: nil},
		{name: "nil container", container: nil, field: FieldClasses, path: coffeedoc.ObjectPath{"Foo"}},
		{name: "typed nil module", container: nilModule, field: FieldClasses, path: coffeedoc.ObjectPath{"Foo"}},
		{name: "field absent on module", container: mod, field: FieldInstanceMethods, path: coffeedoc.ObjectPath{"Foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := Find(tt.container, tt.field, tt.path)
			assert.False(t, ok)
			assert.Nil(t, obj)
		})
	}
}

func TestOwningClass(t *testing.T) {
	mod := &coffeedoc.Module{Classes: []*coffeedoc.Class{{Name: "Outer"}, {Name: "Outer.Inner"}}}

	cls, ok := OwningClass(mod, coffeedoc.ObjectPath{"Outer", "Inner", "go"})
	require.True(t, ok)
	assert.Equal(t, "Outer", cls.Name)

	_, ok = OwningClass(mod, coffeedoc.ObjectPath{"Other", "go"})
	assert.False(t, ok)

	_, ok = OwningClass(nil, coffeedoc.ObjectPath{"Outer"})
	assert.False(t, ok)
}

func TestParentFQN(t *testing.T) {
	tests := []struct {
		name   string
		mod    *coffeedoc.Module
		parent string
		want   string
	}{
		{
			name: "declared in same module",
			mod: &coffeedoc.Module{
				Path:    "a/b/mod.coffee",
				Name:    "a/b/mod::",
				Classes: []*coffeedoc.Class{{Name: "Sub", Parent: "Base"}, {Name: "Base"}},
				Deps:    deps("Base", "elsewhere"),
			},
			parent: "Base",
			want:   "a/b/mod::Base",
		},
		{
			name:   "unknown name unchanged",
			mod:    &coffeedoc.Module{Path: "mod.coffee", Name: "mod::", Deps: deps("lib", "./lib")},
			parent: "External",
			want:   "External",
		},
		{
			name:   "relative dependency",
			mod:    &coffeedoc.Module{Path: "a/b/mod.coffee", Name: "a/b/mod::", Deps: deps("lib", "./helpers")},
			parent: "lib",
			want:   "a/b/helpers::lib",
		},
		{
			name:   "relative dependency with parent dir and extension",
			mod:    &coffeedoc.Module{Path: "a/b/mod.coffee", Name: "a/b/mod::", Deps: deps("Zeta", "../vendor/zeta.js")},
			parent: "Zeta",
			want:   "a/vendor/zeta::Zeta",
		},
		{
			name:   "relative dependency with coffee extension at root",
			mod:    &coffeedoc.Module{Path: "mod.coffee", Name: "mod::", Deps: deps("View", "./view.coffee")},
			parent: "View",
			want:   "view::View",
		},
		{
			name:   "absolute dependency",
			mod:    &coffeedoc.Module{Path: "a/mod.coffee", Name: "a/mod::", Deps: deps("EventEmitter", "events")},
			parent: "EventEmitter",
			want:   "events::EventEmitter",
		},
		{
			name:   "alias substring match",
			mod:    &coffeedoc.Module{Path: "mod.coffee", Name: "mod::", Deps: deps("{Model}", "backbone")},
			parent: "Model",
			want:   "backbone::Model",
		},
		{
			name:   "first alias in table order wins",
			mod:    &coffeedoc.Module{Path: "mod.coffee", Name: "mod::", Deps: deps("ButtonBase", "./base", "Button", "./button")},
			parent: "Button",
			want:   "base::Button",
		},
		{
			name:   "nil deps",
			mod:    &coffeedoc.Module{Path: "mod.coffee", Name: "mod::"},
			parent: "Thing",
			want:   "Thing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParentFQN(tt.mod, tt.parent))
		})
	}
}
