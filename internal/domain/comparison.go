package domain

// ItemComparison is the resolved outcome for a single shopping-list item.
// Either retailer product may be absent when that catalog produced no
// usable candidate.
type ItemComparison struct {
	Item            string         `json:"item"`
	Quantity        int            `json:"quantity"`
	Atacadao        *ProductRecord `json:"atacadao"`
	Tenda           *ProductRecord `json:"tenda"`
	BestOption      Retailer       `json:"bestOption,omitempty"` // empty when neither side resolved
	Savings         float64        `json:"savings"`
	MatchConfidence *float64       `json:"matchConfidence,omitempty"` // set only when a confident match was used
}

// ComparisonBatch is the result of comparing a whole shopping list.
// TotalSavings is always the exact sum of the item savings.
type ComparisonBatch struct {
	BatchID      string           `json:"batchId"`
	Items        []ItemComparison `json:"items"`
	TotalSavings float64          `json:"totalSavings"`
}
