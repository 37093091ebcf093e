package base

import (
	"github.com/pkg/errors"
)

// File-layout constants of a Proton Mail export directory.
const (
	// LabelsFileName is the label definitions document shipped at the root
	// of every export.
	LabelsFileName = "labels.json"

	// OrganizedDirName is the output directory created below the export
	// root. A run refuses to start if it already exists.
	OrganizedDirName = "organized_emails"

	// MetadataSuffix and EmailSuffix pair a metadata document with its
	// email blob through a shared base name.
	MetadataSuffix = ".metadata.json"
	EmailSuffix    = ".eml"
)

// DefaultProgressInterval is how many processed emails pass between
// progress log lines.
const DefaultProgressInterval = 1000

// ErrMalformedInput marks a definitions or metadata document that does not
// parse or lacks its required fields. Fatal for the label dictionary,
// scoped to a single email everywhere else.
var ErrMalformedInput = errors.New("malformed input")
