package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSystemID(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{"0", true},
		{"7", true},
		{"10", true},
		{"", false},
		{"abc123XY", false},
		{"12a", false},
		{"a12", false},
		{"1.5", false},
		{"-1", false},
		{"١٢٣", false}, // non-ASCII digits are not system IDs
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSystemID(tt.id))
		})
	}
}

func TestClassify(t *testing.T) {
	dict := Dictionary{
		"1":        {Name: "Inbox", Kind: KindFolder, TypeCode: 3},
		"7":        {Name: "Sent", Kind: KindFolder, TypeCode: 3},
		"abc123XY": {Name: "Work", Kind: KindFolder, TypeCode: 3},
		"5":        {Name: "All Mail", Kind: KindTag, TypeCode: 1},
		"tagZZ":    {Name: "Newsletter", Kind: KindTag, TypeCode: 1},
		"42":       {Name: "Starred", Kind: KindTag, TypeCode: 1},
		"odd1":     {Name: "Mystery", Kind: KindUnknown, TypeCode: 9},
	}

	tests := []struct {
		name     string
		ids      []string
		expected Partition
	}{
		{
			name:     "empty label set",
			ids:      nil,
			expected: Partition{},
		},
		{
			name: "one of each category",
			ids:  []string{"abc123XY", "1", "tagZZ", "42", "nope"},
			expected: Partition{
				UserFolders:   []string{"Work"},
				SystemFolders: []string{"Inbox"},
				UserTags:      []string{"Newsletter"},
				SystemTags:    []string{"Starred"},
				Unrecognized:  []string{"Unknown_Label_nope"},
			},
		},
		{
			name: "unknown kind lands in unrecognized with type marker",
			ids:  []string{"odd1"},
			expected: Partition{
				Unrecognized: []string{"Mystery_type9"},
			},
		},
		{
			name: "multiple system folders",
			ids:  []string{"7", "1"},
			expected: Partition{
				SystemFolders: []string{"Sent", "Inbox"},
			},
		},
		{
			name: "id absent from dictionary keeps its raw id in the marker",
			ids:  []string{"zzz999"},
			expected: Partition{
				Unrecognized: []string{"Unknown_Label_zzz999"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.ids, dict))
		})
	}
}

// Every ID must land in exactly one category, whatever the dictionary holds.
func TestClassifyPartitionIsTotal(t *testing.T) {
	dict := Dictionary{
		"1":  {Name: "Inbox", Kind: KindFolder, TypeCode: 3},
		"ab": {Name: "Work", Kind: KindFolder, TypeCode: 3},
		"5":  {Name: "All Mail", Kind: KindTag, TypeCode: 1},
		"x9": {Name: "Mystery", Kind: KindUnknown, TypeCode: 9},
	}

	ids := []string{"1", "ab", "5", "x9", "missing", "", "007"}
	p := Classify(ids, dict)

	total := len(p.UserFolders) + len(p.SystemFolders) + len(p.UserTags) + len(p.SystemTags) + len(p.Unrecognized)
	assert.Equal(t, len(ids), total)
}
