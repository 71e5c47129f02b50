package internal

import "sort"

const badKey = "!BADKEY"

// ParseDetails converts variadic detail args into a key/value bag.
// Accepted forms: "key", value pairs, map[string]any (merged), and error
// values exposing Details() (merged). A dangling key or a non-string key
// is kept under "!BADKEY" rather than dropped.
func ParseDetails(args []any) map[string]any {
	details := make(map[string]any)
	for len(args) > 0 {
		switch x := args[0].(type) {
		case string:
			if len(args) == 1 {
				details[badKey] = x
				return details
			}
			details[x] = args[1]
			args = args[2:]
		case map[string]any:
			for k, v := range x {
				details[k] = v
			}
			args = args[1:]
		case interface{ Details() map[string]any }:
			for k, v := range x.Details() {
				details[k] = v
			}
			args = args[1:]
		default:
			details[badKey] = x
			args = args[1:]
		}
	}
	return details
}

// SortedKeys returns the map keys in ascending order for deterministic
// rendering.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
