package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductScopeValidate(t *testing.T) {
	assert.NoError(t, ProductScope{}.Validate())
	assert.NoError(t, ProductScope{Kind: ProductScopeAll}.Validate())
	assert.NoError(t, ProductScope{Kind: ProductScopeBrand, BrandID: 3}.Validate())
	assert.NoError(t, ProductScope{Kind: ProductScopeSubCategory, SubCategoryID: 12}.Validate())
	assert.NoError(t, ProductScope{Kind: ProductScopeList, ProductIDs: []int64{1}}.Validate())

	assert.Error(t, ProductScope{Kind: ProductScopeBrand}.Validate())
	assert.Error(t, ProductScope{Kind: ProductScopeSubCategory}.Validate())
	assert.Error(t, ProductScope{Kind: ProductScopeList}.Validate())
	assert.Error(t, ProductScope{Kind: "warehouse"}.Validate())
}

func TestClientScopeValidate(t *testing.T) {
	assert.NoError(t, ClientScope{}.Validate())
	assert.NoError(t, ClientScope{Kind: ClientScopeAll}.Validate())
	assert.NoError(t, ClientScope{Kind: ClientScopeZone, ZoneID: 4}.Validate())
	assert.NoError(t, ClientScope{Kind: ClientScopeList, ClientIDs: []int64{8}}.Validate())

	assert.Error(t, ClientScope{Kind: ClientScopeZone}.Validate())
	assert.Error(t, ClientScope{Kind: ClientScopeList}.Validate())
	assert.Error(t, ClientScope{Kind: "region"}.Validate())
}

func TestProductScopeMatches(t *testing.T) {
	product := &Product{ID: 12, BrandID: 3, SubCategoryID: 7}

	assert.True(t, ProductScope{}.Matches(product))
	assert.True(t, ProductScope{Kind: ProductScopeAll}.Matches(product))
	assert.True(t, ProductScope{Kind: ProductScopeBrand, BrandID: 3}.Matches(product))
	assert.False(t, ProductScope{Kind: ProductScopeBrand, BrandID: 4}.Matches(product))
	assert.True(t, ProductScope{Kind: ProductScopeSubCategory, SubCategoryID: 7}.Matches(product))
	assert.False(t, ProductScope{Kind: ProductScopeSubCategory, SubCategoryID: 8}.Matches(product))
	assert.True(t, ProductScope{Kind: ProductScopeList, ProductIDs: []int64{11, 12}}.Matches(product))
	assert.False(t, ProductScope{Kind: ProductScopeList, ProductIDs: []int64{11}}.Matches(product))
}

func TestClientScopeMatches(t *testing.T) {
	client := &Client{ID: 8, ZoneID: 4}

	assert.True(t, ClientScope{}.Matches(client))
	assert.True(t, ClientScope{Kind: ClientScopeAll}.Matches(client))
	assert.True(t, ClientScope{Kind: ClientScopeZone, ZoneID: 4}.Matches(client))
	assert.False(t, ClientScope{Kind: ClientScopeZone, ZoneID: 5}.Matches(client))
	assert.True(t, ClientScope{Kind: ClientScopeList, ClientIDs: []int64{8}}.Matches(client))
	assert.False(t, ClientScope{Kind: ClientScopeList, ClientIDs: []int64{9}}.Matches(client))
}
