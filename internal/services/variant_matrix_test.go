// internal/services/variant_matrix_test.go
package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixAttribute(name string, values ...string) MatrixAttribute {
	attr := MatrixAttribute{AttributeID: uuid.New(), Name: name}
	for _, v := range values {
		attr.Values = append(attr.Values, MatrixValue{ValueID: uuid.New(), Value: v})
	}
	return attr
}

func TestGenerateVariantMatrixCardinality(t *testing.T) {
	color := matrixAttribute("Color", "Red", "Blue")
	size := matrixAttribute("Size", "S", "M", "L")

	variants, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{color, size}, nil)

	require.NoError(t, err)
	require.Len(t, variants, 6)

	skus := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		skus[v.SKU] = struct{}{}
		assert.Equal(t, 19.90, v.Price)
		assert.Equal(t, 0, v.StockQuantity)
		assert.True(t, v.IsActive)
		assert.Len(t, v.Attributes, 2)
	}
	assert.Len(t, skus, 6, "synthesized SKUs must be distinct")
	assert.Contains(t, skus, "TS-RED-S")
	assert.Contains(t, skus, "TS-BLUE-L")
}

func TestGenerateVariantMatrixSkuSynthesis(t *testing.T) {
	color := matrixAttribute("Color", "Navy Blue")

	variants, err := GenerateVariantMatrix("POLO", 25, []MatrixAttribute{color}, nil)

	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "POLO-NAVY BLUE", variants[0].SKU)
}

func TestGenerateVariantMatrixPreservesEdits(t *testing.T) {
	color := matrixAttribute("Color", "Red")
	size := matrixAttribute("Size", "S", "M")

	first, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{color, size}, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Hand-edit one row the way the console would.
	barcode := "4006381333931"
	first[0].SKU = "TS-CUSTOM"
	first[0].Price = 24.90
	first[0].StockQuantity = 12
	first[0].Barcode = &barcode

	size.Values = append(size.Values, MatrixValue{ValueID: uuid.New(), Value: "L"})
	second, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{color, size}, first)
	require.NoError(t, err)
	require.Len(t, second, 3)

	var edited *ProposedVariant
	for i := range second {
		if second[i].SKU == "TS-CUSTOM" {
			edited = &second[i]
		}
	}
	require.NotNil(t, edited, "edited combination must survive regeneration")
	assert.Equal(t, 24.90, edited.Price)
	assert.Equal(t, 12, edited.StockQuantity)
	require.NotNil(t, edited.Barcode)
	assert.Equal(t, barcode, *edited.Barcode)
}

func TestGenerateVariantMatrixReuseIsOrderIndependent(t *testing.T) {
	color := matrixAttribute("Color", "Red")
	size := matrixAttribute("Size", "S")

	current, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{color, size}, nil)
	require.NoError(t, err)
	require.Len(t, current, 1)
	current[0].Price = 42

	// Same combination, attribute axes swapped.
	regenerated, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{size, color}, current)
	require.NoError(t, err)
	require.Len(t, regenerated, 1)
	assert.Equal(t, 42.0, regenerated[0].Price)
}

func TestGenerateVariantMatrixPrunesDeselected(t *testing.T) {
	size := matrixAttribute("Size", "S", "M")

	current, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{size}, nil)
	require.NoError(t, err)
	require.Len(t, current, 2)

	size.Values = size.Values[:1]
	pruned, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{size}, current)
	require.NoError(t, err)
	require.Len(t, pruned, 1)
	assert.Equal(t, "TS-S", pruned[0].SKU)
}

func TestGenerateVariantMatrixEmptyValueSubset(t *testing.T) {
	color := matrixAttribute("Color", "Red")
	size := matrixAttribute("Size")
	material := matrixAttribute("Material")

	_, err := GenerateVariantMatrix("TS", 19.90, []MatrixAttribute{color, size, material}, nil)

	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeValidationFailed))
	assert.True(t, strings.Contains(err.Error(), "Size"))
	assert.True(t, strings.Contains(err.Error(), "Material"))
	assert.False(t, strings.Contains(err.Error(), "Color"))
}

func TestGenerateVariantMatrixNoAttributes(t *testing.T) {
	variants, err := GenerateVariantMatrix("TS", 19.90, nil, nil)

	require.NoError(t, err)
	assert.Nil(t, variants)
}
