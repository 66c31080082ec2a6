package instance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/schemaprof/internal/schema"
)

const librarySchema = `
id: https://example.org/library
name: library
version: 2.1.0
prefixes:
  dct: http://purl.org/dc/terms/
types:
  Identifier: {typeof: uriorcurie}
enums:
  Genre:
    permissible_values:
      fiction: {}
      poetry: {}
classes:
  Library:
    attributes:
      id: {identifier: true, required: true, range: Identifier}
      name: {required: true}
      schemaRef: {range: uri, slot_uri: dct:conformsTo}
      schemaVersion: {slot_uri: owl:versionInfo}
      books: {range: Book, multivalued: true, inlined: true}
      address: {range: Address}
      curator: {range: Person}
  Book:
    attributes:
      isbn: {identifier: true, required: true}
      genre: {range: Genre}
      pages: {range: integer}
      price: {range: float}
      available: {range: boolean}
      published: {range: date}
      author: {range: Person, required: true}
  Person:
    attributes:
      id: {identifier: true, required: true, range: Identifier}
      tags: {multivalued: true}
  Address:
    attributes:
      street: {}
      checkedAt: {range: datetime}
      opens: {range: time}
`

var fixedNow = time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC)

func newView(t *testing.T, doc string) *schema.View {
	t.Helper()
	s, err := schema.Parse([]byte(doc))
	require.NoError(t, err)
	v, err := schema.NewView(s)
	require.NoError(t, err)
	return v
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newGenerator(t *testing.T, doc string) *Generator {
	t.Helper()
	return NewGenerator(newView(t, doc),
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(sequentialIDs()))
}

func get(t *testing.T, rec *Record, key string) any {
	t.Helper()
	v, ok := rec.Get(key)
	require.True(t, ok, "missing key %q", key)
	return v
}

func TestInstanceExample(t *testing.T) {
	g := newGenerator(t, librarySchema)

	rec, err := g.Instance("Library", Example, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "schemaRef", "schemaVersion", "books", "address", "curator"}, rec.Keys())
	assert.Equal(t, "https://example.org/library/id-1", get(t, rec, "id"))
	assert.Equal(t, "", get(t, rec, "name"))
	assert.Equal(t, "https://example.org/library", get(t, rec, "schemaRef"))
	assert.Equal(t, "2.1.0", get(t, rec, "schemaVersion"))
	assert.Equal(t, "", get(t, rec, "curator"))

	books, ok := get(t, rec, "books").(*Record)
	require.True(t, ok, "books should be inlined as a dictionary")
	assert.Equal(t, []string{"id-2"}, books.Keys())
	book := get(t, books, "id-2").(*Record)
	assert.Equal(t, "id-2", get(t, book, "isbn"))
	assert.Equal(t, "fiction", get(t, book, "genre"))
	assert.Equal(t, 1, get(t, book, "pages"))
	assert.Equal(t, 1.0, get(t, book, "price"))
	assert.Equal(t, true, get(t, book, "available"))
	assert.Equal(t, "2024-03-05", get(t, book, "published"))
	assert.Equal(t, "", get(t, book, "author"))

	address := get(t, rec, "address").(*Record)
	assert.Equal(t, "2024-03-05T10:11:12Z", get(t, address, "checkedAt"))
	assert.Equal(t, "10:11:12", get(t, address, "opens"))
}

func TestInstancePopulateSharesIdentifiers(t *testing.T) {
	g := newGenerator(t, librarySchema)

	rec, err := g.Instance("Library", Populate, false)
	require.NoError(t, err)

	curator := get(t, rec, "curator")
	assert.Equal(t, "https://example.org/library/id-3", curator)

	books := get(t, rec, "books").(*Record)
	book := get(t, books, "id-2").(*Record)
	assert.Equal(t, curator, get(t, book, "author"))
}

func TestInstanceCacheIsPerCall(t *testing.T) {
	g := newGenerator(t, librarySchema)

	first, err := g.Instance("Person", Example, false)
	require.NoError(t, err)
	second, err := g.Instance("Person", Example, false)
	require.NoError(t, err)

	assert.NotEqual(t, get(t, first, "id"), get(t, second, "id"))
	assert.Equal(t, []any{""}, get(t, first, "tags"))
}

func TestInstanceSkipOptional(t *testing.T) {
	g := newGenerator(t, librarySchema)

	rec, err := g.Instance("Library", Example, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, rec.Keys())
}

func TestInstanceRecursion(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		root string
		path []string
	}{
		{
			name: "self",
			doc: `
id: x
name: x
classes:
  Self:
    attributes:
      child: {range: Self, inlined: true}
`,
			root: "Self",
			path: []string{"Self"},
		},
		{
			name: "through another class",
			doc: `
id: x
name: x
classes:
  A:
    attributes:
      b: {range: B}
  B:
    attributes:
      a: {range: A, multivalued: true}
`,
			root: "A",
			path: []string{"A", "B"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(t, tt.doc)

			_, err := g.Instance(tt.root, Example, false)
			require.ErrorIs(t, err, schema.ErrRecursion)

			var recErr *schema.RecursionError
			require.ErrorAs(t, err, &recErr)
			assert.Equal(t, tt.path, recErr.Path)
			assert.Equal(t, tt.root, recErr.Class)
		})
	}
}

func TestInstanceSelfReferenceByIdentifier(t *testing.T) {
	g := newGenerator(t, `
id: x
name: x
classes:
  Node:
    attributes:
      id: {identifier: true, required: true}
      parent: {range: Node}
      children: {range: Node, multivalued: true}
`)

	rec, err := g.Instance("Node", Populate, false)
	require.NoError(t, err)
	assert.Equal(t, "id-1", get(t, rec, "id"))
	assert.Equal(t, "id-1", get(t, rec, "parent"))
	assert.Equal(t, []any{"id-1"}, get(t, rec, "children"))
}

func TestInstanceUnknownClass(t *testing.T) {
	g := newGenerator(t, librarySchema)
	_, err := g.Instance("Museum", Example, false)
	assert.ErrorIs(t, err, schema.ErrNotFound)
}

func TestInstanceMarshalsInOrder(t *testing.T) {
	g := newGenerator(t, librarySchema)
	rec, err := g.Instance("Address", Example, false)
	require.NoError(t, err)

	data, err := schema.Marshal(rec, schema.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"street": "", "checkedAt": "2024-03-05T10:11:12Z", "opens": "10:11:12"}`, string(data))
	assert.Regexp(t, `(?s)street.*checkedAt.*opens`, string(data))
}
