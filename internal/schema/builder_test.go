package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilder(t *testing.T) {
	b := NewBuilder("https://example.org/p", "p")
	b.SetDefaultPrefix(DefaultPrefixName)
	s := b.Schema(nil)

	assert.Equal(t, "https://example.org/p", s.ID)
	assert.Equal(t, "p", s.Name)
	assert.Equal(t, DefaultPrefixName, s.DefaultPrefix)
	assert.Equal(t, TypeString, s.DefaultRange)
	assert.Equal(t, []string{LinkMLTypesImport}, s.Imports)

	this, ok := s.Prefixes.Get(DefaultPrefixName)
	require.True(t, ok)
	assert.Equal(t, Prefix("https://example.org/p"), this)
	assert.True(t, s.Prefixes.Has("linkml"))
}

func TestBuilderIdempotentAdd(t *testing.T) {
	b := NewBuilder("x", "x")

	assert.True(t, b.AddClass(&Class{Name: "A", Description: "first"}))
	assert.False(t, b.AddClass(&Class{Name: "A", Description: "second"}))
	assert.True(t, b.AddType(&Type{Name: "T"}))
	assert.False(t, b.AddType(&Type{Name: "T"}))
	assert.True(t, b.AddEnum(&Enum{Name: "E"}))
	assert.True(t, b.AddSlot(&Slot{Name: "s"}))
	assert.False(t, b.AddSlot(&Slot{Name: "s"}))

	assert.True(t, b.HasClass("A"))
	assert.True(t, b.Has("E"))
	assert.False(t, b.Has("Z"))

	s := b.Schema(nil)
	a, _ := s.Classes.Get("A")
	assert.Equal(t, "first", a.Description)
	assert.Equal(t, Stats{Classes: 1, Slots: 1, Types: 1, Enums: 1}, b.Stats())
}

func TestBuilderCopiesOnAdd(t *testing.T) {
	b := NewBuilder("x", "x")
	c := &Class{Name: "A", Attributes: NewOrderedMap[*Slot]()}
	c.Attributes.Set("a", &Slot{Name: "a"})
	b.AddClass(c)

	c.Attributes.Delete("a")
	out := b.Schema(nil)
	added, _ := out.Classes.Get("A")
	assert.True(t, added.HasAttribute("a"))
}

func TestBuilderAddPrefix(t *testing.T) {
	b := NewBuilder("x", "x")

	assert.NoError(t, b.AddPrefix("ex", "https://example.org/"))
	assert.NoError(t, b.AddPrefix("ex", "https://example.org/"))

	err := b.AddPrefix("ex", "https://other.org/")
	assert.True(t, errors.Is(err, ErrPrefixConflict))

	uri, _ := b.Schema(nil).Prefixes.Get("ex")
	assert.Equal(t, Prefix("https://example.org/"), uri)
}

func TestBuilderSchemaOrder(t *testing.T) {
	order := loadZoo(t)
	b := NewBuilder("x", "x")
	for _, name := range []string{"Address", "Dog", "Extra", "Animal"} {
		b.AddClass(&Class{Name: name})
	}

	assert.Equal(t, []string{"Address", "Dog", "Extra", "Animal"}, b.Schema(nil).Classes.Keys())
	assert.Equal(t, []string{"Animal", "Dog", "Address", "Extra"}, b.Schema(order).Classes.Keys())
}

func TestStatsString(t *testing.T) {
	assert.Equal(t, "4 classes, 1 slots, 1 types, 1 enums", StatsOf(loadZoo(t)).String())
}
