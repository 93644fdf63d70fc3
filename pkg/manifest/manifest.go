package manifest

import (
	"maps"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// ExtensionPrefix marks a PHP extension requirement in a require mapping.
	ExtensionPrefix = "ext-"

	// RuntimeKey is the require key holding the PHP version constraint.
	RuntimeKey = "php"
)

// Requirements holds what a single manifest declares.
type Requirements struct {
	Runtime    string   // PHP version constraint (empty if not declared)
	Extensions []string // Bare extension names, sorted and distinct
}

// Extract reads the require mapping of doc.
//
// Only an object-valued "require" is considered; anything else counts as an
// empty mapping. Extension names are returned without their prefix, lower-cased,
// sorted ascending, with duplicates removed.
func Extract(doc gjson.Result) Requirements {
	var req Requirements

	require := doc.Get("require")
	if !require.IsObject() {
		return req
	}

	seen := make(map[string]struct{})
	require.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if strings.EqualFold(name, RuntimeKey) && value.Type == gjson.String {
			req.Runtime = value.String()
			return true
		}
		if ext, ok := ExtensionName(name); ok {
			seen[ext] = struct{}{}
		}
		return true
	})

	req.Extensions = slices.Sorted(maps.Keys(seen))
	return req
}

// ExtensionName returns the bare extension name for a require key.
// It reports false when key does not carry [ExtensionPrefix] or nothing
// follows the prefix.
func ExtensionName(key string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(key))
	if !strings.HasPrefix(name, ExtensionPrefix) {
		return "", false
	}
	name = strings.TrimPrefix(name, ExtensionPrefix)
	return name, name != ""
}
