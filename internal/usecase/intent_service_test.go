package usecase

import (
	"context"
	"testing"

	"github.com/precocerto/backend/internal/domain"
)

func TestIntentService(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil for a blank term", func(t *testing.T) {
		svc := NewIntentService(&fakeJudge{}, false)
		if got := svc.Analyze(ctx, "  "); got != nil {
			t.Errorf("Analyze = %+v, want nil", got)
		}
	})

	t.Run("returns nil when the judge fails", func(t *testing.T) {
		svc := NewIntentService(&fakeJudge{}, false)
		if got := svc.Analyze(ctx, "picanha"); got != nil {
			t.Errorf("Analyze = %+v, want nil on judge failure", got)
		}
	})

	t.Run("fills the primary variant from the raw term when missing", func(t *testing.T) {
		judge := &fakeJudge{
			analyzeFn: func(ctx context.Context, term string) (*domain.IntentProfile, error) {
				return &domain.IntentProfile{ProductType: "carne bovina", Confidence: 0.8}, nil
			},
		}
		svc := NewIntentService(judge, false)

		got := svc.Analyze(ctx, "picanha")
		if got == nil {
			t.Fatal("Analyze = nil, want a profile")
		}
		if got.Variants.Primary != "picanha" {
			t.Errorf("Primary = %q, want the raw term", got.Variants.Primary)
		}
	})

	t.Run("keeps the judge's variants when present", func(t *testing.T) {
		judge := &fakeJudge{
			analyzeFn: func(ctx context.Context, term string) (*domain.IntentProfile, error) {
				return &domain.IntentProfile{
					ProductType: "carne bovina",
					Variants:    domain.SearchVariants{Primary: "picanha angus", Generic: "picanha"},
					Confidence:  0.9,
				}, nil
			},
		}
		svc := NewIntentService(judge, false)

		got := svc.Analyze(ctx, "picanha angus da boa")
		if got == nil {
			t.Fatal("Analyze = nil, want a profile")
		}
		if got.Variants.Primary != "picanha angus" {
			t.Errorf("Primary = %q, want %q", got.Variants.Primary, "picanha angus")
		}
	})
}

func TestSearchVariantsOrdered(t *testing.T) {
	t.Run("orders primary, alternative, generic", func(t *testing.T) {
		v := domain.SearchVariants{Primary: "a", Alternative: "b", Generic: "c"}
		got := v.Ordered()
		want := []string{"a", "b", "c"}
		if len(got) != len(want) {
			t.Fatalf("Ordered = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Ordered[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("drops empties and duplicates", func(t *testing.T) {
		v := domain.SearchVariants{Primary: "picanha", Alternative: "", Generic: "picanha"}
		got := v.Ordered()
		if len(got) != 1 || got[0] != "picanha" {
			t.Errorf("Ordered = %v, want [picanha]", got)
		}
	})
}
