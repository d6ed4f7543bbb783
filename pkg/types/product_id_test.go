package types

import (
	"encoding/json"
	"testing"
)

func TestProductIDUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		want  ProductID
		valid bool
	}{
		{name: "string id", raw: `"abc-123"`, want: "abc-123", valid: true},
		{name: "string with spaces", raw: `"  abc  "`, want: "abc", valid: true},
		{name: "empty string", raw: `""`, want: "", valid: false},
		{name: "positive integer", raw: `42`, want: "42", valid: true},
		{name: "zero", raw: `0`, want: "", valid: false},
		{name: "negative", raw: `-7`, want: "", valid: false},
		{name: "fractional", raw: `1.5`, want: "", valid: false},
		{name: "beyond safe range", raw: `9007199254740993`, want: "", valid: false},
		{name: "null", raw: `null`, want: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var id ProductID
			if err := json.Unmarshal([]byte(tt.raw), &id); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, id)
			}
			if id.Valid() != tt.valid {
				t.Fatalf("expected valid=%v for %q", tt.valid, tt.raw)
			}
		})
	}
}

func TestProductIDRemoteShaped(t *testing.T) {
	t.Parallel()

	if !ProductID("6ba7b810-9dad-11d1-80b4-00c04fd430c8").RemoteShaped() {
		t.Fatalf("uuid should be remote shaped")
	}
	if ProductID("42").RemoteShaped() {
		t.Fatalf("numeric id should not be remote shaped")
	}
	if ProductID("not-a-uuid").RemoteShaped() {
		t.Fatalf("arbitrary string should not be remote shaped")
	}
}
