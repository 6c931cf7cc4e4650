// internal/models/jsonb.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSON decodes a JSONB column into dst. NULL leaves dst untouched.
func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// IntMap is a JSONB object of integer counters, e.g. per-variant stock.
// A nil map is stored as NULL.
type IntMap map[string]int

func (m IntMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(map[string]int(m))
}

func (m *IntMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	out := map[string]int{}
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	*m = out
	return nil
}
