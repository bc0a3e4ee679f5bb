package registry

import "github.com/Treedy2020/FinalCheck/internal/domain"

// Standard identifiers for the built-in catalog.
const (
	StandardUniformLawLabels = "uniform_law_labels"
	StandardCaliforniaTB117  = "california_flammability"
	StandardLabellingReview  = "labelling_review"
	StandardFlammabilityTest = "flammability_test"
)

// builtinStandards is the fixed catalog of compliance standards the model
// checks pages against. The descriptions and requirement lists feed directly
// into the evaluation prompt.
func builtinStandards() []domain.Standard {
	return []domain.Standard{
		{
			ID:          StandardUniformLawLabels,
			Title:       "Uniform Law Labels",
			Description: "Verify the document contains a proper Uniform Law Label for products with filling materials.",
			Requirements: []string{
				"Information about filling materials used in the product",
				"Manufacturer information",
				"Warning text (e.g., \"DO NOT REMOVE THIS TAG\")",
				"Material composition percentages",
				"Registration number (REG. NO.)",
			},
		},
		{
			ID:          StandardCaliforniaTB117,
			Title:       "California Flammability Notice (TB117)",
			Description: "Verify the document contains a proper California Flammability Notice per Technical Bulletin 117.",
			Requirements: []string{
				"Product's flammability performance",
				"Use of flame retardant chemicals (if any)",
				"Product safety statement",
				"California compliance declaration",
			},
		},
		{
			ID:          StandardLabellingReview,
			Title:       "Labelling Review (16 CFR Part 1640)",
			Description: "Verify compliance with the federal flammability labeling requirements for upholstered furniture.",
			Requirements: []string{
				"Flammability labeling requirements for upholstered furniture",
				"Compliance information that must be included on the label",
				"Compliance with U.S. Consumer Product Safety Commission (CPSC) requirements",
				"Applies to furniture products with filling materials, excluding bedding",
				"Exemption provisions for thinner products (< 0.5 inches)",
			},
		},
		{
			ID:          StandardFlammabilityTest,
			Title:       "Flammability Test (16 CFR Part 1631)",
			Description: "Check compliance with the federal flammability test standard for floor coverings.",
			Requirements: []string{
				"Product name, model, and manufacturer identification",
				"Flammability test date and clear pass/fail indication",
				"Compliance with the 16 CFR Part 1631 test method",
				"Special notice if no flame retardants were used",
				"Safety precautions and required warning symbols",
				"CPSC compliance statement and certification number (if applicable)",
				"Label clearly legible, durable, and securely attached",
			},
		},
	}
}

// builtinProducts maps product categories to the standards they must carry.
// Bedding items need only a law label; upholstered furniture with filling
// additionally needs TB117 and 16 CFR 1640; floor coverings need 16 CFR 1631.
func builtinProducts() []domain.ProductType {
	return []domain.ProductType{
		{
			ID:   "cushion",
			Name: "Cushion",
			Standards: []string{
				StandardUniformLawLabels,
				StandardCaliforniaTB117,
				StandardLabellingReview,
			},
		},
		{
			ID:        "mattress_pad",
			Name:      "Mattress Pad",
			Standards: []string{StandardUniformLawLabels},
		},
		{
			ID:        "pillow_pad",
			Name:      "Pillow Pad",
			Standards: []string{StandardUniformLawLabels},
		},
		{
			ID:        "quilt_mat",
			Name:      "Quilt Mat",
			Standards: []string{StandardUniformLawLabels},
		},
		{
			ID:        "nap_mat",
			Name:      "Nap Mat",
			Standards: []string{StandardUniformLawLabels},
		},
		{
			ID:   "floor_mat",
			Name: "Floor Mat",
			Standards: []string{
				StandardUniformLawLabels,
				StandardFlammabilityTest,
			},
		},
		{
			ID:        "towel_blanket",
			Name:      "Towel/Blanket",
			Standards: []string{},
		},
	}
}
