package domain

// SearchVariants holds the optimized query variants produced by intent
// analysis, ordered from most to least specific.
type SearchVariants struct {
	Primary     string `json:"primary"`
	Alternative string `json:"alternative,omitempty"` // without the brand
	Generic     string `json:"generic,omitempty"`     // broad fallback
}

// Ordered returns the non-empty variants in retry order, deduplicated.
func (v SearchVariants) Ordered() []string {
	var terms []string
	seen := make(map[string]bool)
	for _, t := range []string{v.Primary, v.Alternative, v.Generic} {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	return terms
}

// IntentProfile is the structured understanding of one raw search term.
// It is built once per item and read-only afterwards. When intent analysis
// fails there is no profile and the raw term is used downstream.
type IntentProfile struct {
	ProductType    string         `json:"productType"`              // e.g. "carne bovina", "bebida"
	ProductSubtype string         `json:"productSubtype,omitempty"` // e.g. "picanha"
	Attributes     []string       `json:"attributes,omitempty"`     // e.g. ["angus", "premium"]
	DesiredBrand   string         `json:"desiredBrand,omitempty"`
	QuantityInfo   string         `json:"quantityInfo,omitempty"` // e.g. "10 unidades"
	UnitWeight     string         `json:"unitWeight,omitempty"`   // e.g. "400g", "1L"
	Variants       SearchVariants `json:"searchVariants"`
	ExcludeWords   []string       `json:"excludeWords,omitempty"` // words that signal a WRONG product
	Confidence     float64        `json:"confidence"`
}
