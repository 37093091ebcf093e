package labels

import "fmt"

const (
	// AllMailName is Proton's catch-all tag. Falling back to it is routine
	// and must not produce a warning.
	AllMailName = "All Mail"

	// UnlabeledFolder receives emails whose label set yields nothing usable.
	UnlabeledFolder = "Unlabeled"
)

// Select maps a partition to exactly one destination folder name.
//
// Priority order, first non-empty category wins:
// user folders, then system folders, then tags (user and system pooled),
// then unrecognized markers, then UnlabeledFolder. Within the winning
// category ties break to the lexicographically smallest name, so repeated
// runs over the same export always file an email identically regardless of
// the order IDs appear in its metadata.
//
// A tag fallback returns a non-empty warning unless the chosen tag is
// AllMailName. Select never fails: every partition, including the
// all-empty one, maps to a folder name.
func Select(p Partition) (folder string, warning string) {
	if len(p.UserFolders) > 0 {
		return smallest(p.UserFolders), ""
	}

	if len(p.SystemFolders) > 0 {
		return smallest(p.SystemFolders), ""
	}

	if len(p.UserTags) > 0 || len(p.SystemTags) > 0 {
		tags := make([]string, 0, len(p.UserTags)+len(p.SystemTags))
		tags = append(tags, p.UserTags...)
		tags = append(tags, p.SystemTags...)
		chosen := smallest(tags)
		if chosen == AllMailName {
			return chosen, ""
		}
		return chosen, fmt.Sprintf("no folder labels, falling back to tag %q (all tags: %v)", chosen, tags)
	}

	if len(p.Unrecognized) > 0 {
		return smallest(p.Unrecognized), ""
	}

	return UnlabeledFolder, ""
}

func smallest(names []string) string {
	min := names[0]
	for _, name := range names[1:] {
		if name < min {
			min = name
		}
	}
	return min
}
