package cache

import (
	"fmt"
	"strings"
)

// KeySeparator joins the parts of a composite key.
const KeySeparator = "_"

// Key builds a deterministic cache key from its parts, joined with
// KeySeparator. Empty parts are skipped.
//
// Example:
//
//	Key("product", 42) // "product_42"
//	Key("all", "products") // "all_products"
func Key(parts ...any) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(fmt.Sprint(p))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, KeySeparator)
}
