package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func loadZoo(t *testing.T) *Schema {
	t.Helper()
	s, err := Load("testdata/zoo.yaml")
	require.NoError(t, err)
	return s
}

func zooView(t *testing.T) *View {
	t.Helper()
	v, err := NewView(loadZoo(t))
	require.NoError(t, err)
	return v
}

func mustParse(t *testing.T, doc string) *Schema {
	t.Helper()
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	return s
}
