// internal/services/variant_matrix.go
package services

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// MatrixValue is one chosen vocabulary value on a selected attribute axis.
type MatrixValue struct {
	ValueID uuid.UUID `json:"value_id" validate:"required"`
	Value   string    `json:"value" validate:"required"`
}

// MatrixAttribute is a selected attribute together with the chosen subset
// of its values. The order of attributes fixes the order of bindings in the
// generated combinations, which fixes SKU suffixes and display order.
type MatrixAttribute struct {
	AttributeID uuid.UUID     `json:"attribute_id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Values      []MatrixValue `json:"values"`
}

// VariantAttributeRef is one (attribute, value) binding on a proposed variant.
type VariantAttributeRef struct {
	AttributeID      uuid.UUID `json:"attribute_id" validate:"required"`
	AttributeValueID uuid.UUID `json:"attribute_value_id" validate:"required"`
}

// ProposedVariant is one row of the editor's variant table: either carried
// over from a previous generation (possibly hand-edited) or synthesized.
type ProposedVariant struct {
	SKU            string                `json:"sku"`
	Price          float64               `json:"price"`
	CompareAtPrice *float64              `json:"compare_at_price,omitempty"`
	StockQuantity  int                   `json:"stock_quantity"`
	Barcode        *string               `json:"barcode,omitempty"`
	IsActive       bool                  `json:"is_active"`
	Attributes     []VariantAttributeRef `json:"attributes"`
}

// GenerateVariantMatrix produces one proposed variant per combination in the
// Cartesian product of the chosen value subsets. A combination already
// present in the current proposal, compared as an order-independent set of
// (attribute, value) pairs, keeps its sku/price/stock/barcode, so hand
// edits survive regeneration. New combinations get a synthesized SKU of
// {baseSku}-{VALUE-NAMES} and default to the base price with zero stock.
//
// Combinations absent from the new selection are pruned: regeneration after
// deselecting a value is a destructive, user-triggered action.
//
// Selecting zero attributes disables variant mode (nil matrix, no error).
// Any selected attribute with zero chosen values makes the Cartesian
// product ambiguous and is rejected, naming every offending attribute.
func GenerateVariantMatrix(baseSku string, basePrice float64, selected []MatrixAttribute, current []ProposedVariant) ([]ProposedVariant, error) {
	if len(selected) == 0 {
		return nil, nil
	}

	var empty []string
	for _, attr := range selected {
		if len(attr.Values) == 0 {
			empty = append(empty, attr.Name)
		}
	}
	if len(empty) > 0 {
		return nil, NewValidationFailed("attributes",
			"attributes with no selected values: "+strings.Join(empty, ", "))
	}

	existing := make(map[string]*ProposedVariant, len(current))
	for i := range current {
		existing[combinationKey(current[i].Attributes)] = &current[i]
	}

	combos := cartesian(selected)

	out := make([]ProposedVariant, 0, len(combos))
	for _, combo := range combos {
		refs := make([]VariantAttributeRef, len(combo))
		names := make([]string, len(combo))
		for i, cell := range combo {
			refs[i] = VariantAttributeRef{AttributeID: cell.attributeID, AttributeValueID: cell.value.ValueID}
			names[i] = cell.value.Value
		}

		if prior, ok := existing[combinationKey(refs)]; ok {
			kept := *prior
			kept.Attributes = refs
			out = append(out, kept)
			continue
		}

		out = append(out, ProposedVariant{
			SKU:           synthesizeSKU(baseSku, names),
			Price:         basePrice,
			StockQuantity: 0,
			IsActive:      true,
			Attributes:    refs,
		})
	}

	return out, nil
}

type matrixCell struct {
	attributeID uuid.UUID
	value       MatrixValue
}

func cartesian(selected []MatrixAttribute) [][]matrixCell {
	combos := [][]matrixCell{{}}
	for _, attr := range selected {
		next := make([][]matrixCell, 0, len(combos)*len(attr.Values))
		for _, combo := range combos {
			for _, value := range attr.Values {
				grown := make([]matrixCell, len(combo), len(combo)+1)
				copy(grown, combo)
				grown = append(grown, matrixCell{attributeID: attr.AttributeID, value: value})
				next = append(next, grown)
			}
		}
		combos = next
	}
	return combos
}

// combinationKey canonicalizes a binding set so two combinations compare
// equal regardless of attribute order.
func combinationKey(refs []VariantAttributeRef) string {
	pairs := make([]string, len(refs))
	for i, ref := range refs {
		pairs[i] = ref.AttributeID.String() + ":" + ref.AttributeValueID.String()
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}

func synthesizeSKU(baseSku string, valueNames []string) string {
	return baseSku + "-" + strings.ToUpper(strings.Join(valueNames, "-"))
}
