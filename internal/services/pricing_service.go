package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pricing-backend/internal/events"
	"pricing-backend/internal/registry"
	"pricing-backend/internal/repositories"
)

// RowStore is the persistence surface the service needs. Satisfied by
// repositories.RowRepository; tests supply fakes.
type RowStore interface {
	List(ctx context.Context, tc *registry.TableConfig, includeInactive bool) ([]repositories.Row, error)
	Insert(ctx context.Context, tc *registry.TableConfig, values map[string]any) (int64, error)
	Update(ctx context.Context, tc *registry.TableConfig, id int64, values map[string]any) error
	Deactivate(ctx context.Context, tc *registry.TableConfig, id int64) error
	Restore(ctx context.Context, tc *registry.TableConfig, id int64) error
}

// RowCache is the read-side cache for shaped row sets. A nil cache disables
// caching entirely.
type RowCache interface {
	Get(ctx context.Context, tableKey string, includeInactive bool) ([]repositories.Row, bool)
	Set(ctx context.Context, tableKey string, includeInactive bool, rows []repositories.Row)
}

// PricingService enforces the per-table editor strategy rules on top of the
// generic row store: which operations a table offers, payload validation and
// coercion per column config, and change events after every successful write.
type PricingService struct {
	reg       *registry.Registry
	store     RowStore
	cache     RowCache
	publisher events.Publisher
	logger    *zap.Logger
}

func NewPricingService(reg *registry.Registry, store RowStore, cache RowCache, publisher events.Publisher, logger *zap.Logger) *PricingService {
	return &PricingService{
		reg:       reg,
		store:     store,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Sections returns the static schema served to clients.
func (s *PricingService) Sections() []registry.PricingSection {
	return s.reg.Sections()
}

// ListRows returns all rows of a table shaped for the wire. Key/value tables
// always include inactive rows; custom displays have no row set of their own.
func (s *PricingService) ListRows(ctx context.Context, tableKey string, includeInactive bool) ([]repositories.Row, error) {
	tc, ok := s.reg.Table(tableKey)
	if !ok {
		return nil, ErrTableNotFound
	}
	switch tc.Editor {
	case registry.EditorCustom:
		return nil, ErrUnsupported
	case registry.EditorKeyValue:
		includeInactive = true
	}

	if s.cache != nil {
		if rows, hit := s.cache.Get(ctx, tableKey, includeInactive); hit {
			return rows, nil
		}
	}

	raw, err := s.store.List(ctx, tc, includeInactive)
	if err != nil {
		return nil, err
	}
	rows := make([]repositories.Row, len(raw))
	for i, r := range raw {
		rows[i] = shapeRow(tc, r)
	}

	if s.cache != nil {
		s.cache.Set(ctx, tableKey, includeInactive, rows)
	}
	return rows, nil
}

// CreateRow validates and inserts a new row, returning the server-assigned id.
func (s *PricingService) CreateRow(ctx context.Context, tableKey string, payload map[string]any) (int64, error) {
	tc, ok := s.reg.Table(tableKey)
	if !ok {
		return 0, ErrTableNotFound
	}
	switch tc.Editor {
	case registry.EditorForm, registry.EditorCustom:
		// Single-record and read-only tables offer no create path.
		return 0, ErrUnsupported
	}

	values, err := s.coercePayload(tc, payload, false)
	if err != nil {
		return 0, err
	}
	for _, col := range tc.Columns {
		if !col.Required {
			continue
		}
		if v, present := values[col.Key]; !present || v == nil || v == "" {
			return 0, validationErrorf("%s is required", col.Label)
		}
	}

	id, err := s.store.Insert(ctx, tc, values)
	if err != nil {
		return 0, translateStoreError(tableKey, err)
	}

	s.publishChanged(ctx, tableKey, events.OpCreate, id)
	return id, nil
}

// UpdateRow applies a partial update by primary key. Read-only columns are
// stripped from the payload rather than rejected: edit forms are seeded from
// editable columns only, so a read-only key in the payload is a client bug we
// tolerate, never something we write.
func (s *PricingService) UpdateRow(ctx context.Context, tableKey string, id int64, payload map[string]any) error {
	tc, ok := s.reg.Table(tableKey)
	if !ok {
		return ErrTableNotFound
	}
	if tc.Editor == registry.EditorCustom {
		return ErrUnsupported
	}

	values, err := s.coercePayload(tc, payload, true)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return validationErrorf("No editable values in request")
	}
	for _, col := range tc.Columns {
		if !col.Required {
			continue
		}
		if v, present := values[col.Key]; present && (v == nil || v == "") {
			return validationErrorf("%s is required", col.Label)
		}
	}

	if err := s.store.Update(ctx, tc, id, values); err != nil {
		return translateStoreError(tableKey, err)
	}

	s.publishChanged(ctx, tableKey, events.OpUpdate, id)
	return nil
}

// DeactivateRow soft-deletes a row. Idempotent: deactivating an inactive row
// succeeds and leaves it inactive.
func (s *PricingService) DeactivateRow(ctx context.Context, tableKey string, id int64) error {
	tc, err := s.lifecycleTable(tableKey)
	if err != nil {
		return err
	}
	if err := s.store.Deactivate(ctx, tc, id); err != nil {
		return err
	}
	s.publishChanged(ctx, tableKey, events.OpDeactivate, id)
	return nil
}

// RestoreRow reverses a soft delete.
func (s *PricingService) RestoreRow(ctx context.Context, tableKey string, id int64) error {
	tc, err := s.lifecycleTable(tableKey)
	if err != nil {
		return err
	}
	if err := s.store.Restore(ctx, tc, id); err != nil {
		return err
	}
	s.publishChanged(ctx, tableKey, events.OpRestore, id)
	return nil
}

func (s *PricingService) lifecycleTable(tableKey string) (*registry.TableConfig, error) {
	tc, ok := s.reg.Table(tableKey)
	if !ok {
		return nil, ErrTableNotFound
	}
	if !tc.HasActiveFilter {
		return nil, ErrUnsupported
	}
	return tc, nil
}

// coercePayload validates every payload key against the column config and
// converts values for the repository. Unknown keys are rejected; on updates,
// read-only columns are dropped.
func (s *PricingService) coercePayload(tc *registry.TableConfig, payload map[string]any, update bool) (map[string]any, error) {
	values := make(map[string]any, len(payload))
	for key, v := range payload {
		col, ok := tc.Column(key)
		if !ok {
			return nil, validationErrorf("Unknown column %q", key)
		}
		if update && !col.Editable() {
			continue
		}
		coerced, err := coerceValue(col, v)
		if err != nil {
			return nil, err
		}
		values[key] = coerced
	}
	return values, nil
}

func (s *PricingService) publishChanged(ctx context.Context, tableKey, op string, id int64) {
	event := events.Changed{
		EventID:  uuid.New(),
		TableKey: tableKey,
		Op:       op,
		RowID:    id,
	}
	if err := s.publisher.Publish(ctx, events.TopicPricingChanged, event); err != nil {
		s.logger.Warn("failed to publish pricing change",
			zap.String("table_key", tableKey),
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
