package cache

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []any
		want  string
	}{
		{
			name:  "product id",
			parts: []any{"product", 1},
			want:  "product_1",
		},
		{
			name:  "listing",
			parts: []any{"all", "products"},
			want:  "all_products",
		},
		{
			name:  "single part",
			parts: []any{"session"},
			want:  "session",
		},
		{
			name:  "empty parts skipped",
			parts: []any{"product", "", " ", 7},
			want:  "product_7",
		},
		{
			name:  "no parts",
			parts: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.parts...); got != tt.want {
				t.Errorf("Key(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestKey_Deterministic(t *testing.T) {
	key1 := Key("product", 999)
	key2 := Key("product", 999)

	if key1 != key2 {
		t.Errorf("Keys should be deterministic: %s != %s", key1, key2)
	}
}
