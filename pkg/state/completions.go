package state

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Completions returns possible completions of state variable names for a
// prefix, matched case-insensitively. A prefix with zero or one
// separator completes among all entity IDs; a prefix with two separators
// completes among the attribute names of one specific entity. The result
// is a set: no ordering, no duplicates.
func (a *Accessor) Completions(prefix string) mapset.Set[string] {
	words := mapset.NewSet[string]()

	switch strings.Count(prefix, Separator) {
	case 2:
		lastSep := strings.LastIndex(prefix, Separator)
		entityID := prefix[:lastSep]
		attrPrefix := strings.ToLower(prefix[lastSep+1:])

		attrs, exists := a.store.GetAttributes(entityID)
		if !exists {
			break
		}
		for attrName := range attrs {
			if strings.HasPrefix(strings.ToLower(attrName), attrPrefix) {
				words.Add(entityID + Separator + attrName)
			}
		}
	case 0, 1:
		lower := strings.ToLower(prefix)
		for _, entityID := range a.store.EntityIDs() {
			if strings.HasPrefix(strings.ToLower(entityID), lower) {
				words.Add(entityID)
			}
		}
	}

	return words
}
