package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameAttributes(t *testing.T) {
	s := mustParse(t, `
id: x
name: x
slots:
  schemaLevel: {}
classes:
  Dataset:
    slots: [schemaLevel]
    attributes:
      releaseDate: {range: date}
      conformsTo: {}
      HTTPEndpoint: {}
      already_snake: {}
`)

	out, err := RenameAttributes(s, map[string]string{"conformsTo": "conforms_to_schema"})
	require.NoError(t, err)

	dataset, _ := out.Classes.Get("Dataset")
	assert.Equal(t, []string{"release_date", "conforms_to_schema", "http_endpoint", "already_snake"}, dataset.Attributes.Keys())
	releaseDate, _ := dataset.Attributes.Get("release_date")
	assert.Equal(t, "release_date", releaseDate.Name)
	assert.Equal(t, "date", releaseDate.Range)

	assert.True(t, out.Slots.Has("schemaLevel"))
	assert.Equal(t, []string{"schemaLevel"}, dataset.Slots)

	original, _ := s.Classes.Get("Dataset")
	assert.True(t, original.HasAttribute("releaseDate"))
}

func TestRenameAttributesCollision(t *testing.T) {
	s := mustParse(t, `
id: x
name: x
classes:
  A:
    attributes:
      firstName: {}
      first_name: {}
`)

	_, err := RenameAttributes(s, nil)
	assert.ErrorIs(t, err, ErrRenameCollision)
}
