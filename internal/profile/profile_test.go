package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/schemaprof/internal/schema"
)

const animalSchema = `
id: https://example.org/animals
name: animals
classes:
  Animal:
    abstract: true
    attributes:
      name: {range: string, required: true}
  Dog:
    is_a: Animal
    attributes:
      breed: {range: string}
`

const cycleSchema = `
id: https://example.org/cycle
name: cycle
classes:
  A:
    attributes:
      b: {range: B, required: true}
  B:
    attributes:
      a: {range: A, required: true}
  Unrelated: {}
`

func newView(t *testing.T, doc string) *schema.View {
	t.Helper()
	s, err := schema.Parse([]byte(doc))
	require.NoError(t, err)
	v, err := schema.NewView(s)
	require.NoError(t, err)
	return v
}

func zooView(t *testing.T) *schema.View {
	t.Helper()
	s, err := schema.Load("testdata/zoo.yaml")
	require.NoError(t, err)
	v, err := schema.NewView(s)
	require.NoError(t, err)
	return v
}

func newProfiler(t *testing.T, v *schema.View, opts ...Option) *Profiler {
	t.Helper()
	p, err := New(v, opts...)
	require.NoError(t, err)
	return p
}

// closureViolations lists every range of a kept slot or attribute that the
// schema does not define.
func closureViolations(t *testing.T, s *schema.Schema) []string {
	t.Helper()
	v, err := schema.NewView(s)
	require.NoError(t, err)

	var missing []string
	check := func(owner string, slot *schema.Slot) {
		if rng := v.RangeOf(slot); !v.Resolves(rng) {
			missing = append(missing, owner+" -> "+rng)
		}
	}
	for name, slot := range s.Slots.All() {
		check(name, slot)
	}
	for name, c := range s.Classes.All() {
		for attrName, attr := range c.Attributes.All() {
			check(name+"."+attrName, attr)
		}
		for _, slotName := range c.Slots {
			if !s.Slots.Has(slotName) {
				missing = append(missing, name+" -> slot "+slotName)
			}
		}
	}
	return missing
}

func TestProfileKeepsAncestors(t *testing.T) {
	p := newProfiler(t, newView(t, animalSchema))

	result, err := p.Profile([]string{"Dog"})
	require.NoError(t, err)

	out := result.Schema
	assert.Equal(t, []string{"Animal", "Dog"}, out.Classes.Keys())
	dog, _ := out.Classes.Get("Dog")
	assert.Equal(t, "Animal", dog.IsA)
	assert.True(t, dog.HasAttribute("breed"))
	animal, _ := out.Classes.Get("Animal")
	assert.True(t, animal.HasAttribute("name"))
	assert.Equal(t, []string{"Dog"}, result.Kept)
	assert.Empty(t, result.Skipped)
}

func TestProfileAssociationCycle(t *testing.T) {
	p := newProfiler(t, newView(t, cycleSchema))

	result, err := p.Profile([]string{"A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, result.Schema.Classes.Keys())
}

func TestProfileHeader(t *testing.T) {
	p := newProfiler(t, zooView(t))

	result, err := p.Profile([]string{"Address"})
	require.NoError(t, err)
	out := result.Schema

	assert.Equal(t, "https://example.org/zoo", out.ID)
	assert.Equal(t, "zoo", out.Name)
	assert.Equal(t, "Zoo", out.Title)
	assert.Equal(t, "1.0.0", out.Version)
	assert.Equal(t, schema.DefaultPrefixName, out.DefaultPrefix)
	assert.Equal(t, []string{schema.LinkMLTypesImport}, out.Imports)
	assert.True(t, out.Prefixes.Has("zoo"))
	this, _ := out.Prefixes.Get("this")
	assert.Equal(t, schema.Prefix("https://example.org/zoo"), this)

	assert.Equal(t, []string{"Address"}, out.Classes.Keys())
	assert.Equal(t, 0, out.Types.Len())
	assert.Equal(t, 0, out.Enums.Len())
}

func TestProfileUnconditional(t *testing.T) {
	p := newProfiler(t, zooView(t))

	result, err := p.Profile([]string{"Dog"})
	require.NoError(t, err)
	out := result.Schema

	assert.Equal(t, []string{"Animal", "Dog", "Person", "Address"}, out.Classes.Keys())
	assert.Equal(t, []string{"id"}, out.Slots.Keys())
	assert.Equal(t, []string{"Identifier"}, out.Types.Keys())
	assert.Equal(t, []string{"Diet"}, out.Enums.Keys())
	assert.Empty(t, closureViolations(t, out))
}

func TestProfilePruneOptional(t *testing.T) {
	p := newProfiler(t, zooView(t), WithPolicy(PruneOptional))

	result, err := p.Profile([]string{"Dog"})
	require.NoError(t, err)
	out := result.Schema

	assert.Equal(t, []string{"Animal", "Dog"}, out.Classes.Keys())
	assert.Equal(t, []string{"Identifier", schema.SentinelTypeName}, out.Types.Keys())

	dog, _ := out.Classes.Get("Dog")
	owner, _ := dog.Attributes.Get("owner")
	assert.Equal(t, schema.SentinelTypeName, owner.Range)

	sentinel, _ := out.Types.Get(schema.SentinelTypeName)
	assert.True(t, schema.IsSentinelType(sentinel))
	assert.Empty(t, closureViolations(t, out))
}

func TestProfilePruneKeepsRootRanges(t *testing.T) {
	p := newProfiler(t, zooView(t), WithPolicy(PruneOptional))

	result, err := p.Profile([]string{"Dog", "Person"})
	require.NoError(t, err)
	out := result.Schema

	dog, _ := out.Classes.Get("Dog")
	owner, _ := dog.Attributes.Get("owner")
	assert.Equal(t, "Person", owner.Range)

	person, _ := out.Classes.Get("Person")
	address, _ := person.Attributes.Get("address")
	assert.Equal(t, schema.SentinelTypeName, address.Range)
	assert.False(t, out.Classes.Has("Address"))
}

func TestProfileNeverPrunesRequired(t *testing.T) {
	doc := `
id: x
name: x
classes:
  Order:
    attributes:
      customer: {range: Customer, required: true}
      coupon: {range: Coupon}
  Customer: {}
  Coupon: {}
`
	p := newProfiler(t, newView(t, doc), WithPolicy(PruneOptional))

	result, err := p.Profile([]string{"Order"})
	require.NoError(t, err)
	out := result.Schema

	for _, c := range out.Classes.All() {
		for _, attr := range c.Attributes.All() {
			if attr.Required {
				assert.NotEqual(t, schema.SentinelTypeName, attr.Range, "%s.%s", c.Name, attr.Name)
			}
		}
	}
	assert.Equal(t, []string{"Order", "Customer"}, out.Classes.Keys())
}

func TestProfilePruningFollowsInducedAttributes(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		roots      []string
		wantKept   []string
		ownerRange string
	}{
		{
			name: "subclass makes an inherited attribute required",
			doc: `
id: x
name: x
classes:
  Pet:
    attributes:
      owner: {range: Person}
  Dog:
    is_a: Pet
    attributes:
      owner: {required: true}
  Person: {}
`,
			roots:      []string{"Dog"},
			wantKept:   []string{"Pet", "Dog", "Person"},
			ownerRange: "Person",
		},
		{
			name: "subclass narrows the range of a required attribute",
			doc: `
id: x
name: x
classes:
  Thing: {}
  Pet:
    attributes:
      owner: {range: Thing, required: true}
  Dog:
    is_a: Pet
    attributes:
      owner: {range: Person}
  Person: {}
`,
			roots:      []string{"Dog"},
			wantKept:   []string{"Thing", "Pet", "Dog", "Person"},
			ownerRange: "Person",
		},
		{
			name: "shared slot required by a descendant outside the roots",
			doc: `
id: x
name: x
slots:
  owner: {range: Person}
classes:
  Pet:
    slots: [owner]
  Dog:
    is_a: Pet
    attributes:
      owner: {required: true}
  Person: {}
`,
			roots:      []string{"Pet"},
			wantKept:   []string{"Pet", "Person"},
			ownerRange: "Person",
		},
		{
			name: "optional everywhere is pruned",
			doc: `
id: x
name: x
classes:
  Pet:
    attributes:
      owner: {range: Person}
  Dog:
    is_a: Pet
    attributes:
      owner: {description: Who feeds the dog}
  Person: {}
`,
			roots:      []string{"Dog"},
			wantKept:   []string{"Pet", "Dog"},
			ownerRange: schema.SentinelTypeName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProfiler(t, newView(t, tt.doc), WithPolicy(PruneOptional))

			result, err := p.Profile(tt.roots)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKept, result.Schema.Classes.Keys())

			out, err := schema.NewView(result.Schema)
			require.NoError(t, err)
			for _, name := range out.ClassNames() {
				induced, err := out.InducedClass(name)
				require.NoError(t, err)
				for _, attr := range induced.Attributes.All() {
					if attr.Required {
						assert.NotEqual(t, schema.SentinelTypeName, attr.Range, "%s.%s", name, attr.Name)
					}
				}
			}

			root := tt.roots[len(tt.roots)-1]
			induced, err := out.InducedClass(root)
			require.NoError(t, err)
			owner, ok := induced.Attributes.Get("owner")
			require.True(t, ok)
			assert.Equal(t, tt.ownerRange, owner.Range)
		})
	}
}

func TestProfileIsAFixedPoint(t *testing.T) {
	for _, policy := range []Policy{Unconditional, PruneOptional} {
		t.Run(policy.String(), func(t *testing.T) {
			roots := []string{"Dog"}
			first, err := newProfiler(t, zooView(t), WithPolicy(policy)).Profile(roots)
			require.NoError(t, err)

			v, err := schema.NewView(first.Schema)
			require.NoError(t, err)
			second, err := newProfiler(t, v, WithPolicy(policy)).Profile(roots)
			require.NoError(t, err)

			a, err := schema.Marshal(first.Schema, schema.FormatYAML)
			require.NoError(t, err)
			b, err := schema.Marshal(second.Schema, schema.FormatYAML)
			require.NoError(t, err)
			assert.Equal(t, string(a), string(b))
		})
	}
}

func TestProfileIsDeterministic(t *testing.T) {
	p := newProfiler(t, zooView(t))

	first, err := p.Profile([]string{"Dog", "Address"})
	require.NoError(t, err)
	second, err := p.Profile([]string{"Address", "Dog"})
	require.NoError(t, err)

	a, err := schema.Marshal(first.Schema, schema.FormatYAML)
	require.NoError(t, err)
	b, err := schema.Marshal(second.Schema, schema.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestProfileDoesNotModifyView(t *testing.T) {
	v := zooView(t)
	before, err := schema.Marshal(v.Schema(), schema.FormatYAML)
	require.NoError(t, err)

	_, err = newProfiler(t, v, WithPolicy(PruneOptional), WithFixDoc(true), WithRename(nil)).Profile([]string{"Dog"})
	require.NoError(t, err)

	after, err := schema.Marshal(v.Schema(), schema.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestProfileSkipsMissingRoot(t *testing.T) {
	p := newProfiler(t, newView(t, animalSchema))

	result, err := p.Profile([]string{"Cat", "Dog"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dog"}, result.Kept)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "Cat", result.Skipped[0].Name)
	assert.ErrorIs(t, result.Skipped[0].Err, schema.ErrNotFound)
	assert.True(t, result.Schema.Classes.Has("Dog"))
}

func TestProfileDanglingRangeLeavesNoTrace(t *testing.T) {
	doc := `
id: x
name: x
enums:
  Colour: {permissible_values: {red: {}}}
classes:
  Broken:
    attributes:
      colour: {range: Colour}
      part: {range: Part}
  Part:
    attributes:
      ghost: {range: Ghost}
  Fine: {}
`
	p := newProfiler(t, newView(t, doc))

	result, err := p.Profile([]string{"Broken", "Fine"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fine"}, result.Schema.Classes.Keys())
	assert.Equal(t, 0, result.Schema.Enums.Len())

	require.Len(t, result.Skipped, 1)
	var refErr *schema.InvalidReferenceError
	require.True(t, errors.As(result.Skipped[0].Err, &refErr))
	assert.Equal(t, "Ghost", refErr.Target)
	assert.Equal(t, "Part", refErr.Element)
	assert.Equal(t, "ghost", refErr.Attribute)
}

func TestProfileStrict(t *testing.T) {
	p := newProfiler(t, newView(t, animalSchema), WithStrict(true))

	result, err := p.Profile([]string{"Cat", "Dog"})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrNotFound)
	require.NotNil(t, result)
	assert.True(t, result.Schema.Classes.Has("Dog"))
}

func TestProfileFixDoc(t *testing.T) {
	doc := `
id: x
name: x
classes:
  A:
    description: "spread   over\n  lines"
    attributes:
      a: {description: " padded\tvalue "}
`
	p := newProfiler(t, newView(t, doc), WithFixDoc(true))
	result, err := p.Profile([]string{"A"})
	require.NoError(t, err)

	a, _ := result.Schema.Classes.Get("A")
	assert.Equal(t, "spread over lines", a.Description)
	attr, _ := a.Attributes.Get("a")
	assert.Equal(t, "padded value", attr.Description)
}

func TestProfileRename(t *testing.T) {
	p := newProfiler(t, zooView(t), WithRename(map[string]string{"pets": "animals"}))
	result, err := p.Profile([]string{"Person"})
	require.NoError(t, err)

	person, _ := result.Schema.Classes.Get("Person")
	assert.Equal(t, []string{"full_name", "animals", "address"}, person.Attributes.Keys())
}

func TestNewRejectsSentinelCollision(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name:    "class",
			doc:     "id: x\nname: x\nclasses:\n  replaced_by_profiler: {}\n",
			wantErr: true,
		},
		{
			name:    "different type",
			doc:     "id: x\nname: x\ntypes:\n  replaced_by_profiler: {typeof: integer}\n",
			wantErr: true,
		},
		{
			name:    "profiler output",
			doc:     "id: x\nname: x\ntypes:\n  replaced_by_profiler: {base: str, uri: xsd:string}\n",
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newView(t, tt.doc))
			if tt.wantErr {
				assert.ErrorIs(t, err, schema.ErrSentinelCollision)
				return
			}
			assert.NoError(t, err)
		})
	}
}
