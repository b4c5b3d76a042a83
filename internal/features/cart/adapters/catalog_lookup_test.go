package adapters

import (
	"context"
	"testing"

	catalogadapters "nearzy/internal/features/catalog/adapters"
	catalogservice "nearzy/internal/features/catalog/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup_Product(t *testing.T) {
	source, err := catalogadapters.NewStaticCatalog()
	require.NoError(t, err)
	lookup := NewCatalogLookup(catalogservice.NewCatalogService(source))

	p, err := lookup.Product(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Parle-G Biscuits", p.Name)

	missing, err := lookup.Product(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
