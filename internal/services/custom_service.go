package services

import (
	"context"
	"strconv"

	"pricing-backend/internal/registry"
	"pricing-backend/internal/repositories"
)

// CustomProvider computes the rows of a read-only display that has no backing
// table of its own.
type CustomProvider interface {
	Rows(ctx context.Context) ([]repositories.Row, error)
}

// CustomService dispatches custom display names to their providers. The
// mapping is closed: unknown names yield an empty result, mirroring how the
// frontend renders nothing for an unmapped component rather than an error.
type CustomService struct {
	providers map[string]CustomProvider
}

func NewCustomService(reg *registry.Registry, store RowStore) *CustomService {
	return &CustomService{
		providers: map[string]CustomProvider{
			"multiplier-summary": &multiplierSummary{reg: reg, store: store},
		},
	}
}

// Rows returns the computed rows for a display name, or an empty slice for
// names outside the mapping.
func (s *CustomService) Rows(ctx context.Context, name string) ([]repositories.Row, error) {
	provider, ok := s.providers[name]
	if !ok {
		return []repositories.Row{}, nil
	}
	return provider.Rows(ctx)
}

// multiplierSummary joins the markup tiers with the base_multiplier pricing
// constant and reports the effective multiplier per tier.
type multiplierSummary struct {
	reg   *registry.Registry
	store RowStore
}

func (m *multiplierSummary) Rows(ctx context.Context) ([]repositories.Row, error) {
	base := 1.0
	if constants, ok := m.reg.Table("pricing_constants"); ok {
		rows, err := m.store.List(ctx, constants, true)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row["constant_name"] == "base_multiplier" {
				if s, ok := row["config_value"].(string); ok {
					if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
						base = f
					}
				}
			}
		}
	}

	tiers, ok := m.reg.Table("markup_tiers")
	if !ok {
		return []repositories.Row{}, nil
	}
	rows, err := m.store.List(ctx, tiers, false)
	if err != nil {
		return nil, err
	}

	summary := make([]repositories.Row, 0, len(rows))
	for _, row := range rows {
		multiplier := 0.0
		if s, ok := row["multiplier"].(string); ok {
			multiplier, _ = strconv.ParseFloat(s, 64)
		}
		summary = append(summary, repositories.Row{
			"tier_name":            row["tier_name"],
			"cost_floor":           formatDecimal(row["cost_floor"], 2),
			"cost_ceiling":         formatDecimal(row["cost_ceiling"], 2),
			"multiplier":           formatDecimal(row["multiplier"], 4),
			"effective_multiplier": strconv.FormatFloat(multiplier*base, 'f', 4, 64),
		})
	}
	return summary, nil
}
