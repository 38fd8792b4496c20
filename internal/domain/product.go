package domain

// Retailer identifies one of the two compared markets
type Retailer string

const (
	RetailerAtacadao Retailer = "atacadao"
	RetailerTenda    Retailer = "tenda"
)

// ProductRecord is a normalized product listing from a retailer catalog
type ProductRecord struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Brand string  `json:"brand,omitempty"`
	Link  string  `json:"link,omitempty"`
}

// ScoredProduct is a ProductRecord annotated by the relevance filter
type ScoredProduct struct {
	ProductRecord
	RelevanceScore  float64 `json:"relevanceScore"`
	RelevanceReason string  `json:"relevanceReason,omitempty"`
}

// ProductMatch pairs one product from each retailer as "the same product".
// The indices refer to the candidate lists the matcher was given.
type ProductMatch struct {
	AtacadaoIndex int     `json:"atacadaoIndex"`
	TendaIndex    int     `json:"tendaIndex"`
	Confidence    float64 `json:"confidence"`
}

// ShoppingItem is one structured entry of a shopping list
type ShoppingItem struct {
	SearchText string `json:"searchText"`
	Quantity   int    `json:"quantity,omitempty"`
	Brand      string `json:"brand,omitempty"`
	Note       string `json:"note,omitempty"`
}
