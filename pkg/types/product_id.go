package types

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// maxSafeInt is the largest integer the upstream catalog hands out for
// numeric (mock) product identifiers.
const maxSafeInt = 1<<53 - 1

// ProductID identifies a product across cart and favorites. Catalog entries
// use UUID strings; mock entries use positive integers. Both normalize to a
// string form.
type ProductID string

// UnmarshalJSON accepts either a JSON string or a JSON number. Invalid shapes
// normalize to the empty (invalid) identifier rather than failing the whole
// payload, so a single bad entry cannot poison a stored list.
func (p *ProductID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*p = ""
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ProductID(strings.TrimSpace(s))
		return nil
	}

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || n <= 0 || n > maxSafeInt {
		*p = ""
		return nil
	}
	*p = ProductID(strconv.FormatInt(n, 10))
	return nil
}

// Valid reports whether the identifier is usable: a positive in-range
// integer or a non-empty string.
func (p ProductID) Valid() bool {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n > 0 && n <= maxSafeInt
	}
	return true
}

// RemoteShaped reports whether the identifier refers to a record in the
// hosted store, which keys products by UUID. Mock numeric identifiers are
// never pushed remotely.
func (p ProductID) RemoteShaped() bool {
	return uuid.Validate(string(p)) == nil
}

func (p ProductID) String() string {
	return string(p)
}
