package util

import (
	"encoding/json"
	"errors"
)

var ErrNotNumber = errors.New("payload is not a number")

// DecodeJSON decodes raw JSON ([]byte or string) or re-encodes an already
// decoded value (e.g. map[string]any from the config service) into dst.
func DecodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case T:
		*dst = v
		return nil
	case *T:
		*dst = *v
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}

// Float coerces a numeric bus payload. Objects of the form {"raw": n}
// are accepted too.
func Float(p any) (float64, error) {
	switch v := p.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case map[string]any:
		if raw, ok := v["raw"]; ok {
			return Float(raw)
		}
	}
	return 0, ErrNotNumber
}
