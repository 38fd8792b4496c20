package usecase

import "github.com/precocerto/backend/internal/domain"

// resolveItem applies the fallback policy to produce the final per-item
// comparison. Priority order:
//  1. a confident match fixes both retailer products;
//  2. any side still unchosen falls back to that retailer's cheapest candidate;
//  3. with both sides present the cheaper retailer wins and savings are the
//     unit price difference times quantity;
//  4. with one side present that retailer wins with zero savings;
//  5. with neither side there is no winner and zero savings.
//
// An exact price tie resolves to Atacadão so repeated runs are reproducible.
func resolveItem(
	item domain.ShoppingItem,
	atacadao, tenda []domain.ScoredProduct,
	match *domain.ProductMatch,
) domain.ItemComparison {
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}

	result := domain.ItemComparison{
		Item:     item.SearchText,
		Quantity: quantity,
	}

	if match != nil {
		a := atacadao[match.AtacadaoIndex].ProductRecord
		t := tenda[match.TendaIndex].ProductRecord
		result.Atacadao = &a
		result.Tenda = &t
		confidence := match.Confidence
		result.MatchConfidence = &confidence
	}

	if result.Atacadao == nil {
		result.Atacadao = cheapest(atacadao)
	}
	if result.Tenda == nil {
		result.Tenda = cheapest(tenda)
	}

	switch {
	case result.Atacadao != nil && result.Tenda != nil:
		if result.Atacadao.Price <= result.Tenda.Price {
			result.BestOption = domain.RetailerAtacadao
			result.Savings = (result.Tenda.Price - result.Atacadao.Price) * float64(quantity)
		} else {
			result.BestOption = domain.RetailerTenda
			result.Savings = (result.Atacadao.Price - result.Tenda.Price) * float64(quantity)
		}
	case result.Atacadao != nil:
		result.BestOption = domain.RetailerAtacadao
	case result.Tenda != nil:
		result.BestOption = domain.RetailerTenda
	}

	return result
}

// cheapest folds over the candidates with a strict less-than comparator, so
// the first occurrence wins on equal prices. Returns a copy; the candidate
// lists stay untouched.
func cheapest(candidates []domain.ScoredProduct) *domain.ProductRecord {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0].ProductRecord
	for _, c := range candidates[1:] {
		if c.Price < best.Price {
			best = c.ProductRecord
		}
	}
	return &best
}
