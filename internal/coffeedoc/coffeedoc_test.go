package coffeedoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		fullname string
		want     Name
		wantErr  bool
	}{
		{name: "module", kind: KindModule, fullname: "lib/widgets", want: Name{Module: "lib/widgets"}},
		{name: "class", kind: KindClass, fullname: "lib/widgets::Widget", want: Name{Module: "lib/widgets", Path: ObjectPath{"Widget"}}},
		{name: "method", kind: KindMethod, fullname: "app::Outer.Inner.run", want: Name{Module: "app", Path: ObjectPath{"Outer", "Inner", "run"}}},
		{name: "missing separator", kind: KindClass, fullname: "lib/widgets.Widget", wantErr: true},
		{name: "missing object", kind: KindFunction, fullname: "lib::", wantErr: true},
		{name: "second separator", kind: KindMethod, fullname: "a::B::c", wantErr: true},
		{name: "empty", kind: KindModule, fullname: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.kind, tt.fullname)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fullname, got.String())
		})
	}
}

func TestNameChild(t *testing.T) {
	mod := Name{Module: "lib/widgets"}
	cls := mod.Child("Widget.Part")
	assert.Equal(t, ObjectPath{"Widget", "Part"}, cls.Path)
	assert.Equal(t, "lib/widgets::Widget.Part.attach", cls.Child("attach").String())
	assert.Empty(t, mod.Path, "parent path must not be shared with child")
}

func TestObjectPathAffixes(t *testing.T) {
	p := SplitPath("Mod.Foo.Bar")
	assert.True(t, p.HasSuffix(ObjectPath{"Bar"}))
	assert.True(t, p.HasSuffix(ObjectPath{"Foo", "Bar"}))
	assert.False(t, p.HasSuffix(ObjectPath{"Foo"}))
	assert.False(t, p.HasSuffix(nil))
	assert.True(t, p.HasPrefix(ObjectPath{"Mod", "Foo"}))
	assert.False(t, p.HasPrefix(ObjectPath{"Foo"}))
	assert.Nil(t, SplitPath(""))
}

func TestKind(t *testing.T) {
	for _, kind := range []Kind{KindModule, KindClass, KindFunction, KindMethod, KindStaticMethod} {
		got, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	got, err := ParseKind("coffeestaticmethod")
	require.NoError(t, err)
	assert.Equal(t, KindStaticMethod, got)

	_, err = ParseKind("attribute")
	assert.Error(t, err)
}

func TestObjectRepr(t *testing.T) {
	mod := Blank("lib/missing.coffee")
	assert.Equal(t, "<coffee module lib/missing::>", mod.String())
	assert.Equal(t, "<coffee class Widget>", (&Class{Name: "Widget"}).String())

	fn := NewCallable(KindStaticMethod, &Function{Name: "create", Params: []string{"a", "b"}, Docstring: "Makes one."})
	assert.Equal(t, "<coffee staticmethod create>", fn.String())
	assert.Equal(t, "(a, b)", fn.Signature())
	assert.Equal(t, "Makes one.", fn.Doc())

	assert.Panics(t, func() { NewCallable(KindClass, &Function{}) })
}

func TestModuleUnmarshalKeepsDepsOrder(t *testing.T) {
	var mod Module
	err := json.Unmarshal([]byte(`{"path": "m.coffee", "deps": {"z": "./z", "a": "a", "m": "../m"}, "classes": [{"name": "C", "parent": null}]}`), &mod)
	require.NoError(t, err)

	var keys []string
	for pair := mod.Deps.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
	assert.Empty(t, mod.Classes[0].Parent)
}
