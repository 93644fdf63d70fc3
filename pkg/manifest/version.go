package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
)

// devMarker identifies development builds ("dev-main", "2.x-dev").
const devMarker = "dev"

// Order decides which version counts as "first" during selection.
type Order string

const (
	// OrderDocument keeps versions in the order they appear in the payload.
	OrderDocument Order = "document"

	// OrderSemver sorts parseable versions highest first, followed by the
	// unparseable ones in document order.
	OrderSemver Order = "semver"
)

// Orders lists every supported Order.
var Orders = []Order{OrderDocument, OrderSemver}

// ParseOrder converts a string to an Order. The empty string means OrderDocument.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderDocument, nil
	case OrderDocument, OrderSemver:
		return o, nil
	default:
		return "", fmt.Errorf("unknown version order %q (want one of %v)", s, Orders)
	}
}

// Version is one entry of a registry versions mapping.
type Version struct {
	Name     string       // Version string as published (e.g. "v7.2.0")
	Manifest gjson.Result // Manifest object for this version
}

// SelectVersion picks the version whose manifest should be inspected.
//
// It returns the first version, in the given order, whose name does not
// contain "dev"; if every version is a development build, the first one is
// returned. The boolean is false when versions is empty or not an object.
func SelectVersion(versions gjson.Result, order Order) (Version, bool) {
	all := ordered(versions, order)
	if len(all) == 0 {
		return Version{}, false
	}
	for _, v := range all {
		if !IsDevelopment(v.Name) {
			return v, true
		}
	}
	return all[0], true
}

// IsDevelopment reports whether a version string marks a development build.
func IsDevelopment(version string) bool {
	return strings.Contains(strings.ToLower(version), devMarker)
}

func ordered(versions gjson.Result, order Order) []Version {
	if !versions.IsObject() {
		return nil
	}

	var all []Version
	versions.ForEach(func(key, value gjson.Result) bool {
		all = append(all, Version{Name: key.String(), Manifest: value})
		return true
	})

	if order == OrderSemver {
		sortSemver(all)
	}
	return all
}

// sortSemver sorts highest version first. Versions that do not parse keep
// their relative order after all parseable ones.
func sortSemver(all []Version) {
	parsed := make(map[string]*semver.Version, len(all))
	for _, v := range all {
		if sv, err := semver.NewVersion(v.Name); err == nil {
			parsed[v.Name] = sv
		}
	}

	slices.SortStableFunc(all, func(a, b Version) int {
		av, bv := parsed[a.Name], parsed[b.Name]
		switch {
		case av == nil && bv == nil:
			return 0
		case av == nil:
			return 1
		case bv == nil:
			return -1
		default:
			return bv.Compare(av)
		}
	})
}
