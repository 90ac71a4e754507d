package registry

import (
	"fmt"
	"regexp"
)

// ColumnType is the closed set of value types a pricing column can carry.
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeDecimal ColumnType = "decimal"
	TypeInteger ColumnType = "integer"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeText    ColumnType = "text"
	TypeEnum    ColumnType = "enum"
	TypeJSON    ColumnType = "json"
)

// EditorKind selects which editing strategy a table is served with. The set is
// closed: dispatch sites switch exhaustively over these constants instead of
// comparing raw strings, so an unknown kind fails registry validation at boot
// rather than silently rendering nothing.
type EditorKind string

const (
	EditorTable    EditorKind = "table"
	EditorForm     EditorKind = "form"
	EditorKeyValue EditorKind = "keyvalue"
	EditorCustom   EditorKind = "custom"
)

// ColumnConfig describes one field of one pricing table.
type ColumnConfig struct {
	Key           string     `json:"key"`
	Label         string     `json:"label"`
	Type          ColumnType `json:"type"`
	Required      bool       `json:"required,omitempty"`
	ReadOnly      bool       `json:"read_only,omitempty"`
	Width         int        `json:"width,omitempty"`
	DecimalPlaces int        `json:"decimal_places,omitempty"`
	EnumValues    []string   `json:"enum_values,omitempty"`
	Hidden        bool       `json:"hidden,omitempty"`
}

// Editable reports whether the column accepts user edits. Columns are editable
// unless flagged read-only.
func (c ColumnConfig) Editable() bool {
	return !c.ReadOnly
}

// TableConfig describes one editable server resource: its REST key, columns and
// the editor strategy that serves it.
type TableConfig struct {
	TableKey        string         `json:"table_key"`
	Title           string         `json:"title"`
	Editor          EditorKind     `json:"editor_type"`
	Columns         []ColumnConfig `json:"columns"`
	PrimaryKey      string         `json:"primary_key"`
	HasActiveFilter bool           `json:"has_active_filter"`
	CustomComponent string         `json:"custom_component,omitempty"`
}

// PK returns the primary key column name, defaulting to "id".
func (t *TableConfig) PK() string {
	if t.PrimaryKey == "" {
		return "id"
	}
	return t.PrimaryKey
}

// Column looks up a column by its server field name.
func (t *TableConfig) Column(key string) (ColumnConfig, bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnConfig{}, false
}

// PricingSection groups one or more tables into a single panel of the pricing
// management UI. Sections are build-time constants and statically ordered.
type PricingSection struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tables      []TableConfig `json:"tables"`
}

// Registry is the static schema of all pricing sections.
type Registry struct {
	sections []PricingSection
	byKey    map[string]*TableConfig
}

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// New builds a registry from an ordered section list and validates it. The
// server refuses to boot on a broken registry, so every invariant is checked
// here rather than per request.
func New(sections []PricingSection) (*Registry, error) {
	r := &Registry{
		sections: sections,
		byKey:    make(map[string]*TableConfig),
	}

	for si := range sections {
		sec := &sections[si]
		if sec.ID == "" {
			return nil, fmt.Errorf("section %d: missing id", si)
		}
		if len(sec.Tables) == 0 {
			return nil, fmt.Errorf("section %q: no tables", sec.ID)
		}
		for ti := range sec.Tables {
			tc := &sec.Tables[ti]
			if err := validateTable(tc); err != nil {
				return nil, fmt.Errorf("section %q: %w", sec.ID, err)
			}
			if _, dup := r.byKey[tc.TableKey]; dup {
				return nil, fmt.Errorf("duplicate table key %q", tc.TableKey)
			}
			r.byKey[tc.TableKey] = tc
		}
	}

	return r, nil
}

// MustNew is New for the static built-in schema, where a validation failure is
// a programming error.
func MustNew(sections []PricingSection) *Registry {
	r, err := New(sections)
	if err != nil {
		panic(err)
	}
	return r
}

func validateTable(tc *TableConfig) error {
	if !identifierPattern.MatchString(tc.TableKey) {
		return fmt.Errorf("table key %q is not a valid identifier", tc.TableKey)
	}
	switch tc.Editor {
	case EditorTable, EditorForm, EditorKeyValue:
		if tc.CustomComponent != "" {
			return fmt.Errorf("table %q: custom_component set on non-custom editor", tc.TableKey)
		}
	case EditorCustom:
		if tc.CustomComponent == "" {
			return fmt.Errorf("table %q: custom editor requires custom_component", tc.TableKey)
		}
	default:
		return fmt.Errorf("table %q: unknown editor type %q", tc.TableKey, tc.Editor)
	}

	if len(tc.Columns) == 0 && tc.Editor != EditorCustom {
		return fmt.Errorf("table %q: no columns", tc.TableKey)
	}

	seen := make(map[string]bool, len(tc.Columns))
	for _, col := range tc.Columns {
		if !identifierPattern.MatchString(col.Key) {
			return fmt.Errorf("table %q: column key %q is not a valid identifier", tc.TableKey, col.Key)
		}
		if seen[col.Key] {
			return fmt.Errorf("table %q: duplicate column key %q", tc.TableKey, col.Key)
		}
		seen[col.Key] = true
		if col.Key == tc.PK() {
			return fmt.Errorf("table %q: column %q shadows the primary key", tc.TableKey, col.Key)
		}

		switch col.Type {
		case TypeString, TypeDecimal, TypeInteger, TypeBoolean, TypeDate, TypeText, TypeJSON:
			if len(col.EnumValues) > 0 {
				return fmt.Errorf("table %q: column %q: enum_values on non-enum column", tc.TableKey, col.Key)
			}
		case TypeEnum:
			if len(col.EnumValues) == 0 {
				return fmt.Errorf("table %q: column %q: enum column without enum_values", tc.TableKey, col.Key)
			}
		default:
			return fmt.Errorf("table %q: column %q: unknown type %q", tc.TableKey, col.Key, col.Type)
		}
	}

	return nil
}

// Sections returns the ordered section list.
func (r *Registry) Sections() []PricingSection {
	return r.sections
}

// Table resolves a table key to its config. The second return is false for
// keys that are not part of the schema; callers treat that as "table not
// configured", never as a reason to touch the database.
func (r *Registry) Table(tableKey string) (*TableConfig, bool) {
	tc, ok := r.byKey[tableKey]
	return tc, ok
}

// TableKeys returns every registered table key. Order is unspecified.
func (r *Registry) TableKeys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	return keys
}
