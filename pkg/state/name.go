package state

import "strings"

// Separator divides the parts of a state variable name.
const Separator = "."

// splitName splits a state variable name into its parts. Valid names have
// exactly two parts ("domain.entity") or three ("domain.entity.attribute").
// Returns nil, false for any other shape. Empty parts are rejected so names
// like "a..b" or ".a.b" do not slip through.
func splitName(name string) ([]string, bool) {
	parts := strings.Split(name, Separator)
	if len(parts) != 2 && len(parts) != 3 {
		return nil, false
	}
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}
	return parts, true
}

// ValidName reports whether name is a well-formed 2- or 3-part state
// variable name.
func ValidName(name string) bool {
	_, ok := splitName(name)
	return ok
}

// ValidEntityID reports whether name is a well-formed 2-part entity ID.
func ValidEntityID(name string) bool {
	parts, ok := splitName(name)
	return ok && len(parts) == 2
}

// SubscriptionKey returns the 2-part "domain.entity" prefix of a valid
// name. For attribute-qualified names the attribute part is stripped.
func SubscriptionKey(name string) (string, bool) {
	parts, ok := splitName(name)
	if !ok {
		return "", false
	}
	return parts[0] + Separator + parts[1], true
}

// splitAttribute splits a name into its entity ID and attribute name.
// The attribute name is empty for a 2-part name.
func splitAttribute(name string) (entityID, attr string, ok bool) {
	parts, ok := splitName(name)
	if !ok {
		return "", "", false
	}
	entityID = parts[0] + Separator + parts[1]
	if len(parts) == 3 {
		attr = parts[2]
	}
	return entityID, attr, true
}
