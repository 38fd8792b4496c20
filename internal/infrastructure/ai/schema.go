package ai

import "google.golang.org/genai"

// Response schemas constrain every judgment call to the JSON shape the
// pipeline unmarshals, the same way the Gemini structured-output API is
// meant to be used.

func intentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"product_type":    {Type: genai.TypeString, Description: "Main category of the product."},
			"product_subtype": {Type: genai.TypeString, Description: "Specific subcategory, empty if unknown."},
			"attributes": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"desired_brand": {Type: genai.TypeString},
			"quantity_info": {Type: genai.TypeString},
			"unit_weight":   {Type: genai.TypeString},
			"search_terms": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"primary":     {Type: genai.TypeString, Description: "Complete optimized search term."},
					"alternative": {Type: genai.TypeString, Description: "Search term without the brand."},
					"generic":     {Type: genai.TypeString, Description: "Very generic fallback term."},
				},
				Required: []string{"primary"},
			},
			"exclude_words": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Words whose presence signals a WRONG product.",
			},
			"confidence": {Type: genai.TypeNumber, Description: "Analysis confidence between 0 and 1."},
		},
		Required: []string{"product_type", "search_terms", "exclude_words", "confidence"},
	}
}

func relevanceSchema() *genai.Schema {
	verdictSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"index":  {Type: genai.TypeInteger, Description: "Index of the product in the submitted list."},
			"score":  {Type: genai.TypeNumber, Description: "Relevance between 0 and 1."},
			"reason": {Type: genai.TypeString, Description: "Brief reason for the score."},
		},
		Required: []string{"index", "score", "reason"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"verdicts": {
				Type:        genai.TypeArray,
				Items:       verdictSchema,
				Description: "Only products with score >= 0.6.",
			},
		},
		Required: []string{"verdicts"},
	}
}

func matchSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matched":        {Type: genai.TypeBoolean, Description: "False when no equivalent pair exists."},
			"atacadao_index": {Type: genai.TypeInteger},
			"tenda_index":    {Type: genai.TypeInteger},
			"confidence":     {Type: genai.TypeNumber, Description: "Match confidence between 0 and 1."},
		},
		Required: []string{"matched", "atacadao_index", "tenda_index", "confidence"},
	}
}

func listSchema() *genai.Schema {
	itemSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"search_text": {Type: genai.TypeString, Description: "Clean, normalized search term."},
			"quantity":    {Type: genai.TypeInteger, Description: "Number of units, 1 if unspecified."},
			"brand":       {Type: genai.TypeString},
			"note":        {Type: genai.TypeString},
		},
		Required: []string{"search_text"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"items": {
				Type:  genai.TypeArray,
				Items: itemSchema,
			},
		},
		Required: []string{"items"},
	}
}
