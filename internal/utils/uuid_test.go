package utils

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	ids := make([]string, 0, 50)
	seen := make(map[string]struct{}, 50)
	for range 50 {
		id := g.Generate()
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	// v7 содержит время в старших битах, поэтому порядок строк совпадает с порядком выдачи
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestUUIDGenerator_Prefixed(t *testing.T) {
	g := NewPrefixedUUIDGenerator("local-")

	id := g.Generate()
	require.True(t, strings.HasPrefix(id, "local-"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "local-"))
	require.NoError(t, err)

	assert.True(t, g.HasPrefix(id))
	assert.False(t, g.HasPrefix(uuid.NewString()))
	assert.False(t, NewUUIDGenerator().HasPrefix(id))
}

func TestNewPrefixedUUIDGenerator_Blank(t *testing.T) {
	id := NewPrefixedUUIDGenerator("  ").Generate()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}
