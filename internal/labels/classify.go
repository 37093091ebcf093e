package labels

import "fmt"

// Partition is one email's label IDs split into the five disjoint
// categories the selector decides between. Each slice holds label names
// (or unresolved-label markers), not IDs.
type Partition struct {
	UserFolders   []string // complex ID, folder kind
	SystemFolders []string // numeric ID, folder kind
	UserTags      []string // complex ID, tag kind
	SystemTags    []string // numeric ID, tag kind
	Unrecognized  []string // unknown ID or unknown kind
}

// Classify places every label ID of one email into exactly one category,
// crossing the ID's shape (numeric = system, complex = user) with the
// dictionary's kind. IDs absent from the dictionary and labels with an
// unrecognized kind both land in Unrecognized, under a marker name that
// keeps them identifiable in the output tree. Pure and deterministic.
func Classify(labelIDs []string, dict Dictionary) Partition {
	var p Partition

	for _, id := range labelIDs {
		rec, ok := dict[id]
		if !ok {
			p.Unrecognized = append(p.Unrecognized, fmt.Sprintf("Unknown_Label_%s", id))
			continue
		}

		system := IsSystemID(id)
		switch rec.Kind {
		case KindFolder:
			if system {
				p.SystemFolders = append(p.SystemFolders, rec.Name)
			} else {
				p.UserFolders = append(p.UserFolders, rec.Name)
			}
		case KindTag:
			if system {
				p.SystemTags = append(p.SystemTags, rec.Name)
			} else {
				p.UserTags = append(p.UserTags, rec.Name)
			}
		default:
			p.Unrecognized = append(p.Unrecognized, fmt.Sprintf("%s_type%d", rec.Name, rec.TypeCode))
		}
	}

	return p
}

// IsSystemID reports whether a label ID has the all-digits shape Proton
// uses for built-in labels. User-created labels carry opaque encoded IDs.
// The test depends only on the ID's characters, never on the dictionary.
func IsSystemID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
