package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"pricing-backend/internal/registry"
	"pricing-backend/internal/repositories"
)

const dateLayout = "2006-01-02"

// coerceValue validates one incoming payload value against its column config
// and converts it to the representation the repository binds. Decimals, dates
// and json travel as strings (the repository casts them); empty strings on
// non-text columns become NULL, leaving validity decisions that depend on
// Required to the caller.
func coerceValue(col registry.ColumnConfig, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch col.Type {
	case registry.TypeString, registry.TypeText:
		s, ok := v.(string)
		if !ok {
			return nil, validationErrorf("%s must be a string", col.Label)
		}
		return s, nil

	case registry.TypeDecimal:
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		case string:
			trimmed := strings.TrimSpace(n)
			if trimmed == "" {
				return nil, nil
			}
			if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
				return nil, validationErrorf("%s must be a number", col.Label)
			}
			return trimmed, nil
		default:
			return nil, validationErrorf("%s must be a number", col.Label)
		}

	case registry.TypeInteger:
		switch n := v.(type) {
		case float64:
			if n != float64(int64(n)) {
				return nil, validationErrorf("%s must be a whole number", col.Label)
			}
			return int64(n), nil
		case string:
			trimmed := strings.TrimSpace(n)
			if trimmed == "" {
				return nil, nil
			}
			i, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return nil, validationErrorf("%s must be a whole number", col.Label)
			}
			return i, nil
		default:
			return nil, validationErrorf("%s must be a whole number", col.Label)
		}

	case registry.TypeBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, validationErrorf("%s must be true or false", col.Label)
			}
			return parsed, nil
		default:
			return nil, validationErrorf("%s must be true or false", col.Label)
		}

	case registry.TypeDate:
		s, ok := v.(string)
		if !ok {
			return nil, validationErrorf("%s must be a date (YYYY-MM-DD)", col.Label)
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		if _, err := time.Parse(dateLayout, s); err != nil {
			return nil, validationErrorf("%s must be a date (YYYY-MM-DD)", col.Label)
		}
		return s, nil

	case registry.TypeEnum:
		s, ok := v.(string)
		if !ok {
			return nil, validationErrorf("%s must be one of: %s", col.Label, strings.Join(col.EnumValues, ", "))
		}
		if s == "" {
			return nil, nil
		}
		for _, allowed := range col.EnumValues {
			if s == allowed {
				return s, nil
			}
		}
		return nil, validationErrorf("%s must be one of: %s", col.Label, strings.Join(col.EnumValues, ", "))

	case registry.TypeJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, validationErrorf("%s must be valid JSON", col.Label)
		}
		return string(data), nil

	default:
		return nil, validationErrorf("%s has an unknown column type", col.Label)
	}
}

// shapeRow converts repository values to their canonical wire form: decimals
// become fixed-point strings at the configured precision, json text becomes a
// raw message so it serializes structurally, integers normalize to int64.
func shapeRow(tc *registry.TableConfig, row repositories.Row) repositories.Row {
	shaped := make(repositories.Row, len(row))
	for key, v := range row {
		col, ok := tc.Column(key)
		if !ok {
			// Primary key and is_active pass through untouched.
			shaped[key] = normalizeScalar(v)
			continue
		}
		if v == nil {
			shaped[key] = nil
			continue
		}
		switch col.Type {
		case registry.TypeDecimal:
			shaped[key] = formatDecimal(v, col.DecimalPlaces)
		case registry.TypeJSON:
			if s, ok := v.(string); ok {
				shaped[key] = json.RawMessage(s)
			} else {
				shaped[key] = v
			}
		default:
			shaped[key] = normalizeScalar(v)
		}
	}
	return shaped
}

func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int:
		return int64(n)
	default:
		return v
	}
}

func formatDecimal(v any, places int) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if places <= 0 {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', places, 64)
}
