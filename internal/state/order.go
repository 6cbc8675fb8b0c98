package state

import (
	"sort"
	"strconv"
	"strings"
)

// unorderedKey sorts slides without a numeric id prefix after numbered ones.
const unorderedKey = 9999

// OrderKey is the integer before the first "_" of a slide id, or 9999.
func OrderKey(id string) int {
	prefix, _, found := strings.Cut(id, "_")
	if !found {
		return unorderedKey
	}
	if prefix == "" || strings.TrimLeft(prefix, "0123456789") != "" {
		return unorderedKey
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return unorderedKey
	}
	return n
}

// OrderSlides returns slides sorted by OrderKey. Ties keep file order.
func OrderSlides(slides []Slide) []Slide {
	out := append([]Slide(nil), slides...)
	sort.SliceStable(out, func(i, j int) bool {
		return OrderKey(out[i].ID) < OrderKey(out[j].ID)
	})
	return out
}
