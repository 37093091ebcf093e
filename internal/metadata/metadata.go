// Package metadata parses per-email metadata documents from a Proton Mail
// export. Two legacy document shapes exist in the wild; both are normalized
// to a flat list of label IDs here, so nothing downstream branches on the
// document layout.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/seborama/proton-mail-export-cli-tidy/pkg/base"
)

type document struct {
	Payload *struct {
		LabelIDs []any `json:"LabelIDs"`
	} `json:"Payload"`
	LabelIDs []any `json:"LabelIDs"`
}

// ParseLabelIDs extracts the label IDs from a metadata document, accepting
// both the nested shape {"Payload":{"LabelIDs":[...]}} and the flat shape
// {"LabelIDs":[...]}. The nested shape wins when both are present. IDs
// written as JSON numbers are stringified. A document that does not parse
// is a malformed-input failure scoped to its email.
func ParseLabelIDs(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrapf(base.ErrMalformedInput, "parsing email metadata: %v", err)
	}

	raw := doc.LabelIDs
	if doc.Payload != nil && doc.Payload.LabelIDs != nil {
		raw = doc.Payload.LabelIDs
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		switch id := v.(type) {
		case string:
			ids = append(ids, id)
		case json.Number:
			ids = append(ids, id.String())
		default:
			ids = append(ids, fmt.Sprintf("%v", v))
		}
	}

	return ids, nil
}
