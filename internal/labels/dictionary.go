// Package labels implements the label domain of a Proton Mail export: the
// label dictionary built from labels.json, the classifier that partitions
// one email's label IDs into categories, and the selector that maps a
// partition to exactly one destination folder name.
package labels

import (
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/seborama/proton-mail-export-cli-tidy/pkg/base"
	"github.com/seborama/proton-mail-export-cli-tidy/pkg/utils"
)

// Wire codes used by the Type field of labels.json entries.
const (
	TypeCodeTag    = 1
	TypeCodeFolder = 3
)

// Kind is the decoded flavour of a label.
type Kind int

const (
	KindUnknown Kind = iota
	KindTag
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Record is one label's descriptive entry in the dictionary. Name is
// sanitized for filesystem use at load time. TypeCode keeps the raw wire
// code so unrecognized kinds stay identifiable downstream.
type Record struct {
	Name     string
	Kind     Kind
	TypeCode int
}

// Dictionary maps a label ID to its record. It is built once per run and
// never mutated afterwards, so it is safe to share.
type Dictionary map[string]Record

type labelsDocument struct {
	Version int          `json:"Version"`
	Payload []labelEntry `json:"Payload"`
}

type labelEntry struct {
	ID   *string `json:"ID"`
	Name *string `json:"Name"`
	Type *int    `json:"Type"`
}

// LoadDictionary builds the dictionary from a labels.json document.
// Incomplete entries are skipped with a warning; unknown Type codes are
// kept as KindUnknown rather than rejected. A document that does not parse,
// has no Payload array, or yields no usable entries is a malformed-input
// failure, which is fatal to the whole run.
func LoadDictionary(data []byte, logger *slog.Logger) (Dictionary, error) {
	var doc labelsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(base.ErrMalformedInput, "parsing label definitions: %v", err)
	}

	if doc.Payload == nil {
		return nil, errors.Wrap(base.ErrMalformedInput, "label definitions document has no Payload array")
	}

	dict := make(Dictionary, len(doc.Payload))
	for _, entry := range doc.Payload {
		if entry.ID == nil || entry.Name == nil || entry.Type == nil {
			logger.Warn("skipping incomplete label entry", "entry", entry)
			continue
		}
		dict[*entry.ID] = Record{
			Name:     utils.SanitizeFolderName(*entry.Name),
			Kind:     kindFromTypeCode(*entry.Type),
			TypeCode: *entry.Type,
		}
	}

	if len(dict) == 0 {
		return nil, errors.Wrap(base.ErrMalformedInput, "no valid label mappings in label definitions document")
	}

	return dict, nil
}

func kindFromTypeCode(code int) Kind {
	switch code {
	case TypeCodeTag:
		return KindTag
	case TypeCodeFolder:
		return KindFolder
	default:
		return KindUnknown
	}
}

// Counts reports how many folders, tags and unknown-kind labels the
// dictionary holds, for startup logging.
func (d Dictionary) Counts() (folders, tags, unknown int) {
	for _, rec := range d {
		switch rec.Kind {
		case KindFolder:
			folders++
		case KindTag:
			tags++
		default:
			unknown++
		}
	}
	return folders, tags, unknown
}

func (e labelEntry) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)
	if e.ID != nil {
		attrs = append(attrs, slog.String("id", *e.ID))
	}
	if e.Name != nil {
		attrs = append(attrs, slog.String("name", *e.Name))
	}
	if e.Type != nil {
		attrs = append(attrs, slog.Int("type", *e.Type))
	}
	return slog.GroupValue(attrs...)
}
