// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a numeric identifier that decodes from a JSON number or a numeric
// string. Browser forms send select values as strings.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = ID(n)
	return nil
}

// Truthy decodes any JSON value the way a form checkbox is read: false, 0,
// "", null, [] and {} are false and everything else is true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = Truthy(val)
	case float64:
		*t = val != 0
	case string:
		*t = val != ""
	case []any:
		*t = len(val) > 0
	case map[string]any:
		*t = len(val) > 0
	default:
		*t = true
	}
	return nil
}
