package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/precocerto/backend/internal/domain"
	"github.com/precocerto/backend/internal/infrastructure/cache"
)

func newTestService(atacadao, tenda *fakeCatalog, judge *fakeJudge) *ComparisonService {
	return NewComparisonService(atacadao, tenda, judge, cache.NewMemoryCache(), nil, ComparisonServiceConfig{
		ItemConcurrency: 1,
	})
}

func TestCompareItems(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an empty list", func(t *testing.T) {
		svc := newTestService(
			&fakeCatalog{retailer: domain.RetailerAtacadao},
			&fakeCatalog{retailer: domain.RetailerTenda},
			&fakeJudge{},
		)

		_, err := svc.CompareItems(ctx, nil, "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects a list of only blank items", func(t *testing.T) {
		svc := newTestService(
			&fakeCatalog{retailer: domain.RetailerAtacadao},
			&fakeCatalog{retailer: domain.RetailerTenda},
			&fakeJudge{},
		)

		_, err := svc.CompareItems(ctx, []domain.ShoppingItem{{SearchText: "   "}}, "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("analyzer unavailable falls back to the raw term with no filtering", func(t *testing.T) {
		atacadao := &fakeCatalog{
			retailer: domain.RetailerAtacadao,
			results: map[string][]domain.ProductRecord{
				"picanha": {{Name: "Picanha Angus 1kg", Price: 59.90}},
			},
		}
		tenda := &fakeCatalog{
			retailer: domain.RetailerTenda,
			results: map[string][]domain.ProductRecord{
				"picanha": {{Name: "Picanha Angus 1kg", Price: 54.90}},
			},
		}
		judge := &fakeJudge{
			// analyzeFn and scoreFn unset: intent analysis and relevance
			// judgment both fail
			matchFn: func(ctx context.Context, a, b []domain.ProductRecord) (*domain.ProductMatch, error) {
				return &domain.ProductMatch{AtacadaoIndex: 0, TendaIndex: 0, Confidence: 0.92}, nil
			},
		}
		svc := newTestService(atacadao, tenda, judge)

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{{SearchText: "picanha", Quantity: 2}}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(atacadao.calls) != 1 || atacadao.calls[0] != "picanha" {
			t.Errorf("atacadao searched %v, want the raw term only", atacadao.calls)
		}
		if len(tenda.calls) != 1 || tenda.calls[0] != "picanha" {
			t.Errorf("tenda searched %v, want the raw term only", tenda.calls)
		}

		item := batch.Items[0]
		if item.BestOption != domain.RetailerTenda {
			t.Errorf("BestOption = %v, want tenda", item.BestOption)
		}
		wantSavings := (59.90 - 54.90) * 2
		if item.Savings != wantSavings {
			t.Errorf("Savings = %v, want %v", item.Savings, wantSavings)
		}
		if batch.TotalSavings != wantSavings {
			t.Errorf("TotalSavings = %v, want %v", batch.TotalSavings, wantSavings)
		}
	})

	t.Run("one empty retailer skips matching and yields zero savings", func(t *testing.T) {
		atacadao := &fakeCatalog{
			retailer: domain.RetailerAtacadao,
			results: map[string][]domain.ProductRecord{
				"arroz": {
					{Name: "Arroz Tipo 1 5kg", Price: 24.00},
					{Name: "Arroz Parboilizado 5kg", Price: 22.50},
				},
			},
		}
		tenda := &fakeCatalog{retailer: domain.RetailerTenda}
		matchCalled := false
		judge := &fakeJudge{
			matchFn: func(ctx context.Context, a, b []domain.ProductRecord) (*domain.ProductMatch, error) {
				matchCalled = true
				return nil, nil
			},
		}
		svc := newTestService(atacadao, tenda, judge)

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{{SearchText: "arroz"}}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if matchCalled {
			t.Error("matcher was invoked with an empty candidate list")
		}
		item := batch.Items[0]
		if item.BestOption != domain.RetailerAtacadao {
			t.Errorf("BestOption = %v, want atacadao", item.BestOption)
		}
		if item.Atacadao == nil || item.Atacadao.Price != 22.50 {
			t.Errorf("Atacadao = %+v, want the cheapest candidate", item.Atacadao)
		}
		if item.Savings != 0 {
			t.Errorf("Savings = %v, want 0", item.Savings)
		}
	})

	t.Run("low-confidence match falls back to cheapest of each", func(t *testing.T) {
		atacadao := &fakeCatalog{
			retailer: domain.RetailerAtacadao,
			results: map[string][]domain.ProductRecord{
				"leite": {
					{Name: "Leite Integral Marca A 1L", Price: 6.50},
					{Name: "Leite Integral Marca B 1L", Price: 5.90},
				},
			},
		}
		tenda := &fakeCatalog{
			retailer: domain.RetailerTenda,
			results: map[string][]domain.ProductRecord{
				"leite": {{Name: "Leite Integral Marca A 1L", Price: 6.20}},
			},
		}
		judge := &fakeJudge{
			matchFn: func(ctx context.Context, a, b []domain.ProductRecord) (*domain.ProductMatch, error) {
				// Confidence below threshold: the pair must not be used
				return &domain.ProductMatch{AtacadaoIndex: 0, TendaIndex: 0, Confidence: 0.55}, nil
			},
		}
		svc := newTestService(atacadao, tenda, judge)

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{{SearchText: "leite"}}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		item := batch.Items[0]
		if item.MatchConfidence != nil {
			t.Errorf("MatchConfidence = %v, want nil for a rejected match", item.MatchConfidence)
		}
		if item.Atacadao == nil || item.Atacadao.Price != 5.90 {
			t.Errorf("Atacadao = %+v, want the cheapest candidate at 5.90", item.Atacadao)
		}
	})

	t.Run("adapter failure degrades only that retailer", func(t *testing.T) {
		atacadao := &fakeCatalog{retailer: domain.RetailerAtacadao, err: domain.ErrRetailerUnavailable}
		tenda := &fakeCatalog{
			retailer: domain.RetailerTenda,
			results: map[string][]domain.ProductRecord{
				"feijao": {{Name: "Feijão Carioca 1kg", Price: 8.90}},
			},
		}
		svc := newTestService(atacadao, tenda, &fakeJudge{})

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{{SearchText: "feijao"}}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		item := batch.Items[0]
		if item.Atacadao != nil {
			t.Errorf("Atacadao = %+v, want nil for a failed adapter", item.Atacadao)
		}
		if item.BestOption != domain.RetailerTenda {
			t.Errorf("BestOption = %v, want tenda", item.BestOption)
		}
	})

	t.Run("item with no candidates anywhere still appears in the batch", func(t *testing.T) {
		svc := newTestService(
			&fakeCatalog{retailer: domain.RetailerAtacadao},
			&fakeCatalog{retailer: domain.RetailerTenda},
			&fakeJudge{},
		)

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{{SearchText: "produto inexistente"}}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(batch.Items) != 1 {
			t.Fatalf("batch has %d items, want 1", len(batch.Items))
		}
		item := batch.Items[0]
		if item.Atacadao != nil || item.Tenda != nil || item.BestOption != "" || item.Savings != 0 {
			t.Errorf("item = %+v, want fully absent result", item)
		}
	})

	t.Run("blank items are skipped, not errors", func(t *testing.T) {
		tenda := &fakeCatalog{
			retailer: domain.RetailerTenda,
			results: map[string][]domain.ProductRecord{
				"cafe": {{Name: "Café Torrado 500g", Price: 18.00}},
			},
		}
		svc := newTestService(&fakeCatalog{retailer: domain.RetailerAtacadao}, tenda, &fakeJudge{})

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{
			{SearchText: ""},
			{SearchText: "cafe"},
			{SearchText: "  "},
		}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(batch.Items) != 1 {
			t.Errorf("batch has %d items, want 1 (blanks skipped)", len(batch.Items))
		}
	})

	t.Run("total savings is the exact sum across items and order is preserved", func(t *testing.T) {
		atacadao := &fakeCatalog{
			retailer: domain.RetailerAtacadao,
			results: map[string][]domain.ProductRecord{
				"picanha": {{Name: "Picanha 1kg", Price: 60.00}},
				"leite":   {{Name: "Leite 1L", Price: 5.00}},
			},
		}
		tenda := &fakeCatalog{
			retailer: domain.RetailerTenda,
			results: map[string][]domain.ProductRecord{
				"picanha": {{Name: "Picanha 1kg", Price: 55.00}},
				"leite":   {{Name: "Leite 1L", Price: 5.50}},
			},
		}
		svc := newTestService(atacadao, tenda, &fakeJudge{})

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{
			{SearchText: "picanha", Quantity: 2},
			{SearchText: "leite", Quantity: 3},
		}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if batch.Items[0].Item != "picanha" || batch.Items[1].Item != "leite" {
			t.Errorf("item order = %q, %q; want input order", batch.Items[0].Item, batch.Items[1].Item)
		}

		var sum float64
		for _, item := range batch.Items {
			if item.Savings < 0 {
				t.Errorf("item %q has negative savings %v", item.Item, item.Savings)
			}
			sum += item.Savings
		}
		if batch.TotalSavings != sum {
			t.Errorf("TotalSavings = %v, want exact sum %v", batch.TotalSavings, sum)
		}
		if batch.BatchID == "" {
			t.Error("BatchID is empty")
		}
	})

	t.Run("retries alternative variants when the primary term finds nothing", func(t *testing.T) {
		atacadao := &fakeCatalog{
			retailer: domain.RetailerAtacadao,
			results: map[string][]domain.ProductRecord{
				"picanha": {{Name: "Picanha 1kg", Price: 60.00}},
			},
		}
		tenda := &fakeCatalog{
			retailer: domain.RetailerTenda,
			results: map[string][]domain.ProductRecord{
				"picanha": {{Name: "Picanha 1kg", Price: 58.00}},
			},
		}
		judge := &fakeJudge{
			analyzeFn: func(ctx context.Context, term string) (*domain.IntentProfile, error) {
				return &domain.IntentProfile{
					ProductType: "carne bovina",
					Variants: domain.SearchVariants{
						Primary:     "picanha angus freeboi",
						Alternative: "picanha angus",
						Generic:     "picanha",
					},
					Confidence: 0.9,
				}, nil
			},
			scoreFn: scoreAll,
		}
		svc := newTestService(atacadao, tenda, judge)

		batch, err := svc.CompareItems(ctx, []domain.ShoppingItem{{SearchText: "picanha angus da freeboi"}}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"picanha angus freeboi", "picanha angus", "picanha"}
		if len(atacadao.calls) != 3 {
			t.Fatalf("atacadao searched %v, want all three variants %v", atacadao.calls, want)
		}
		for i, term := range want {
			if atacadao.calls[i] != term {
				t.Errorf("variant[%d] = %q, want %q", i, atacadao.calls[i], term)
			}
		}
		if batch.Items[0].Atacadao == nil {
			t.Error("generic variant results were not used")
		}
	})
}

func TestParseList(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects blank text", func(t *testing.T) {
		svc := newTestService(
			&fakeCatalog{retailer: domain.RetailerAtacadao},
			&fakeCatalog{retailer: domain.RetailerTenda},
			&fakeJudge{},
		)

		_, err := svc.ParseList(ctx, "  ")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("surfaces judge failure", func(t *testing.T) {
		svc := newTestService(
			&fakeCatalog{retailer: domain.RetailerAtacadao},
			&fakeCatalog{retailer: domain.RetailerTenda},
			&fakeJudge{},
		)

		_, err := svc.ParseList(ctx, "2x picanha\n3x leite integral")
		if !errors.Is(err, domain.ErrJudgeUnavailable) {
			t.Errorf("error = %v, want ErrJudgeUnavailable", err)
		}
	})

	t.Run("normalizes parsed items", func(t *testing.T) {
		judge := &fakeJudge{
			parseFn: func(ctx context.Context, text string) ([]domain.ShoppingItem, error) {
				return []domain.ShoppingItem{
					{SearchText: "picanha", Quantity: 2},
					{SearchText: "", Quantity: 1},
					{SearchText: "leite integral"},
				}, nil
			},
		}
		svc := newTestService(
			&fakeCatalog{retailer: domain.RetailerAtacadao},
			&fakeCatalog{retailer: domain.RetailerTenda},
			judge,
		)

		items, err := svc.ParseList(ctx, "2x picanha\nleite integral")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(items) != 2 {
			t.Fatalf("got %d items, want 2 (blank dropped)", len(items))
		}
		if items[1].Quantity != 1 {
			t.Errorf("Quantity = %d, want default 1", items[1].Quantity)
		}
	})
}
