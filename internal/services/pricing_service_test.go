package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pricing-backend/internal/events"
	"pricing-backend/internal/registry"
	"pricing-backend/internal/repositories"
)

type fakeStore struct {
	rows map[string][]repositories.Row

	insertErr error
	updateErr error

	insertedValues map[string]any
	updatedValues  map[string]any
	updatedID      int64
	deactivated    []int64
	restored       []int64

	lastIncludeInactive bool
}

func (f *fakeStore) List(ctx context.Context, tc *registry.TableConfig, includeInactive bool) ([]repositories.Row, error) {
	f.lastIncludeInactive = includeInactive
	all := f.rows[tc.TableKey]
	if includeInactive || !tc.HasActiveFilter {
		return all, nil
	}
	active := []repositories.Row{}
	for _, row := range all {
		if row["is_active"] != false {
			active = append(active, row)
		}
	}
	return active, nil
}

func (f *fakeStore) Insert(ctx context.Context, tc *registry.TableConfig, values map[string]any) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.insertedValues = values
	return 42, nil
}

func (f *fakeStore) Update(ctx context.Context, tc *registry.TableConfig, id int64, values map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedValues = values
	return nil
}

func (f *fakeStore) Deactivate(ctx context.Context, tc *registry.TableConfig, id int64) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeStore) Restore(ctx context.Context, tc *registry.TableConfig, id int64) error {
	f.restored = append(f.restored, id)
	return nil
}

type capturePublisher struct {
	published []events.Changed
}

func (p *capturePublisher) Publish(ctx context.Context, topic string, event any) error {
	if changed, ok := event.(events.Changed); ok {
		p.published = append(p.published, changed)
	}
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func newTestService(store *fakeStore) (*PricingService, *capturePublisher) {
	pub := &capturePublisher{}
	svc := NewPricingService(registry.Default, store, nil, pub, zap.NewNop())
	return svc, pub
}

func TestListRowsUnknownTable(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})
	_, err := svc.ListRows(context.Background(), "no_such_table", false)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestListRowsCustomTableUnsupported(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})
	_, err := svc.ListRows(context.Background(), "multiplier_summary", false)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestListRowsInactiveToggle(t *testing.T) {
	store := &fakeStore{rows: map[string][]repositories.Row{
		"product_types": {
			{"id": int64(1), "type_code": "CL", "base_rate": "100.5", "is_active": true},
			{"id": int64(2), "type_code": "FL", "base_rate": "80", "is_active": true},
			{"id": int64(3), "type_code": "MN", "base_rate": "50", "is_active": true},
			{"id": int64(4), "type_code": "BX", "base_rate": "25", "is_active": false},
			{"id": int64(5), "type_code": "PT", "base_rate": "10", "is_active": false},
		},
	}}
	svc, _ := newTestService(store)

	active, err := svc.ListRows(context.Background(), "product_types", false)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	all, err := svc.ListRows(context.Background(), "product_types", true)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, false, all[3]["is_active"])
}

func TestListRowsShapesDecimals(t *testing.T) {
	store := &fakeStore{rows: map[string][]repositories.Row{
		"pricing_constants": {
			{"id": int64(1), "constant_name": "base_multiplier", "config_value": "0.1", "description": nil},
		},
	}}
	svc, _ := newTestService(store)

	rows, err := svc.ListRows(context.Background(), "pricing_constants", false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.1000", rows[0]["config_value"])
	assert.Nil(t, rows[0]["description"])
}

func TestListRowsKeyValueAlwaysIncludesInactive(t *testing.T) {
	store := &fakeStore{rows: map[string][]repositories.Row{}}
	svc, _ := newTestService(store)

	_, err := svc.ListRows(context.Background(), "pricing_constants", false)
	require.NoError(t, err)
	assert.True(t, store.lastIncludeInactive)
}

func TestCreateRowRequiredOnly(t *testing.T) {
	store := &fakeStore{}
	svc, pub := newTestService(store)

	id, err := svc.CreateRow(context.Background(), "product_types", map[string]any{
		"type_code": "CL",
		"name":      "Channel Letters",
		"base_rate": "125.50",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "125.50", store.insertedValues["base_rate"])

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.OpCreate, pub.published[0].Op)
	assert.Equal(t, "product_types", pub.published[0].TableKey)
	assert.Equal(t, int64(42), pub.published[0].RowID)
}

func TestCreateRowMissingRequired(t *testing.T) {
	svc, pub := newTestService(&fakeStore{})

	_, err := svc.CreateRow(context.Background(), "product_types", map[string]any{
		"type_code": "CL",
		"name":      "Channel Letters",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Base Rate is required", validationErr.Msg)
	assert.Empty(t, pub.published)
}

func TestCreateRowEmptyDecimalBecomesNull(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	_, err := svc.CreateRow(context.Background(), "letter_styles", map[string]any{
		"name":          "Standard Face Lit",
		"return_depth":  "5\"",
		"min_height_in": "",
		"rate_per_inch": 1.25,
	})
	require.NoError(t, err)
	assert.Nil(t, store.insertedValues["min_height_in"])
	assert.Equal(t, "1.25", store.insertedValues["rate_per_inch"])
}

func TestCreateRowRejectsUnknownColumn(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})

	_, err := svc.CreateRow(context.Background(), "product_types", map[string]any{
		"type_code": "CL",
		"name":      "Channel Letters",
		"base_rate": 100,
		"surprise":  "nope",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Msg, "surprise")
}

func TestCreateRowRejectsBadEnum(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})

	_, err := svc.CreateRow(context.Background(), "power_supplies", map[string]any{
		"part_number": "PS-100",
		"watts":       float64(100),
		"volts":       "48",
		"cost":        "35.00",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Msg, "Volts")
}

func TestCreateRowFormTableUnsupported(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})
	_, err := svc.CreateRow(context.Background(), "shop_settings", map[string]any{"shop_name": "x"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCreateRowDuplicateSurfacesVerbatim(t *testing.T) {
	store := &fakeStore{insertErr: &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "product_types_type_code_key",
	}}
	svc, pub := newTestService(store)

	_, err := svc.CreateRow(context.Background(), "product_types", map[string]any{
		"type_code": "CL",
		"name":      "Channel Letters",
		"base_rate": 100,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Duplicate type_code", validationErr.Msg)
	assert.Empty(t, pub.published)
}

func TestUpdateRowStripsReadOnlyColumns(t *testing.T) {
	store := &fakeStore{}
	svc, pub := newTestService(store)

	err := svc.UpdateRow(context.Background(), "pricing_constants", 7, map[string]any{
		"constant_name": "base_multiplier",
		"config_value":  "15.0000",
		"description":   "updated",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), store.updatedID)
	assert.NotContains(t, store.updatedValues, "constant_name")
	assert.Equal(t, "15.0000", store.updatedValues["config_value"])
	assert.Equal(t, "updated", store.updatedValues["description"])

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.OpUpdate, pub.published[0].Op)
}

func TestUpdateRowAllReadOnlyIsError(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})

	err := svc.UpdateRow(context.Background(), "pricing_constants", 7, map[string]any{
		"constant_name": "base_multiplier",
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateRowCustomTableUnsupported(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})
	err := svc.UpdateRow(context.Background(), "multiplier_summary", 1, map[string]any{"x": 1})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestUpdateRowNotFoundPassesThrough(t *testing.T) {
	store := &fakeStore{updateErr: repositories.ErrRowNotFound}
	svc, _ := newTestService(store)

	err := svc.UpdateRow(context.Background(), "product_types", 99, map[string]any{"name": "X"})
	assert.ErrorIs(t, err, repositories.ErrRowNotFound)
}

func TestDeactivateRestoreLifecycle(t *testing.T) {
	store := &fakeStore{}
	svc, pub := newTestService(store)

	require.NoError(t, svc.DeactivateRow(context.Background(), "product_types", 3))
	require.NoError(t, svc.DeactivateRow(context.Background(), "product_types", 3))
	require.NoError(t, svc.RestoreRow(context.Background(), "product_types", 3))

	assert.Equal(t, []int64{3, 3}, store.deactivated)
	assert.Equal(t, []int64{3}, store.restored)
	require.Len(t, pub.published, 3)
	assert.Equal(t, events.OpDeactivate, pub.published[0].Op)
	assert.Equal(t, events.OpRestore, pub.published[2].Op)
}

func TestDeactivateWithoutActiveFilterUnsupported(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})

	assert.ErrorIs(t, svc.DeactivateRow(context.Background(), "shop_settings", 1), ErrUnsupported)
	assert.ErrorIs(t, svc.RestoreRow(context.Background(), "pricing_constants", 1), ErrUnsupported)
}

func TestTranslateStoreErrorPassesThroughUnknown(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, err, translateStoreError("product_types", err))
}
