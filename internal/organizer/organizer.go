// Package organizer drives a tidy run: it builds the label dictionary,
// walks the export's metadata documents, decides one destination folder per
// email through the labels package, and copies each email blob into place.
package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/seborama/proton-mail-export-cli-tidy/internal/config"
	"github.com/seborama/proton-mail-export-cli-tidy/internal/labels"
	"github.com/seborama/proton-mail-export-cli-tidy/internal/metadata"
	"github.com/seborama/proton-mail-export-cli-tidy/pkg/base"
	"github.com/seborama/proton-mail-export-cli-tidy/pkg/utils"
)

var tracer = otel.Tracer("github.com/seborama/proton-mail-export-cli-tidy/internal/organizer")

// InvalidJSONFolder receives emails whose metadata document does not parse.
// The email itself is still copied, so one bad document never loses mail.
const InvalidJSONFolder = "Invalid_JSON"

// ErrOutputDirExists is returned when the output directory is already
// present, to avoid silently merging into the results of a prior run.
var ErrOutputDirExists = errors.New("output directory already exists")

// Warning is a non-fatal per-email diagnostic surfaced at the end of a run.
type Warning struct {
	Email   string
	Message string
}

// Summary is the outcome of one run.
type Summary struct {
	Processed    int
	Errored      int
	Warnings     []Warning
	FolderCounts map[string]int
}

// Organizer copies the emails of one export directory into a partitioned
// tree, one folder per destination name. Emails are processed one at a
// time; only the read-only label dictionary is shared across iterations.
type Organizer struct {
	exportDir string
	cfg       config.Config
	dryRun    bool

	fileMgr utils.FileManager
	logger  *slog.Logger
}

type Option func(*Organizer) error

// New builds an Organizer, validating that every required collaborator was
// provided.
func New(opts ...Option) (*Organizer, error) {
	o := Organizer{
		cfg: config.Default(),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if o.exportDir == "" {
		return nil, errors.New("requires export directory")
	}

	if o.fileMgr == nil {
		return nil, errors.New("requires file manager")
	}

	if o.logger == nil {
		return nil, errors.New("requires slogger")
	}

	return &o, nil
}

func WithExportDir(dir string) Option {
	return func(o *Organizer) error {
		o.exportDir = dir
		return nil
	}
}

func WithConfig(cfg config.Config) Option {
	return func(o *Organizer) error {
		if err := config.Validate(cfg); err != nil {
			return err
		}
		o.cfg = cfg
		return nil
	}
}

func WithDryRun(dryRun bool) Option {
	return func(o *Organizer) error {
		o.dryRun = dryRun
		return nil
	}
}

func WithFileManager(fm utils.FileManager) Option {
	return func(o *Organizer) error {
		o.fileMgr = fm
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Organizer) error {
		o.logger = logger
		return nil
	}
}

// Run executes the whole tidy pass. Failures before the email loop
// (missing export dir, unreadable dictionary, existing output dir) are
// fatal; within the loop every failure is scoped to its email and the
// batch continues.
func (o *Organizer) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "organize")
	defer span.End()

	summary := Summary{FolderCounts: map[string]int{}}

	info, err := o.fileMgr.Stat(o.exportDir)
	if err != nil {
		return summary, errors.Wrapf(err, "export directory %s", o.exportDir)
	}
	if !info.IsDir() {
		return summary, errors.Errorf("export path %s is not a directory", o.exportDir)
	}

	dict, err := o.loadDictionary(ctx)
	if err != nil {
		return summary, err
	}

	outDir := filepath.Join(o.exportDir, o.cfg.OutputDirName)
	if _, err := o.fileMgr.Stat(outDir); err == nil {
		if !o.dryRun {
			return summary, errors.Wrapf(ErrOutputDirExists,
				"%s: remove or rename it before re-running to avoid duplicating a previous run", outDir)
		}
		o.logger.Warn("output directory already exists, continuing because of dry run", "dir", outDir)
	} else if !os.IsNotExist(err) {
		return summary, errors.Wrapf(err, "checking output directory %s", outDir)
	}

	if !o.dryRun {
		if err := o.fileMgr.MkdirAll(outDir, 0755); err != nil {
			return summary, errors.Wrapf(err, "creating output directory %s", outDir)
		}
	}

	metaFiles, err := o.fileMgr.Glob(filepath.Join(o.exportDir, "*"+base.MetadataSuffix))
	if err != nil {
		return summary, errors.Wrap(err, "discovering metadata files")
	}
	if len(metaFiles) == 0 {
		return summary, errors.Errorf("no email metadata files (*%s) found in %s", base.MetadataSuffix, o.exportDir)
	}

	o.logger.Info("processing emails", "count", len(metaFiles), "dryRun", o.dryRun)

	for _, metaPath := range metaFiles {
		before := summary.Processed
		o.processEmail(metaPath, outDir, dict, &summary)

		if summary.Processed > before && summary.Processed%o.cfg.ProgressInterval == 0 {
			o.logger.Info("progress", "processed", summary.Processed, "total", len(metaFiles))
		}
	}

	span.SetAttributes(
		attribute.Int("emails.processed", summary.Processed),
		attribute.Int("emails.errored", summary.Errored),
		attribute.Int("folders.count", len(summary.FolderCounts)),
	)

	o.logger.Info("completed", "processed", summary.Processed, "errors", summary.Errored, "outputDir", outDir)
	o.logFolderSummary(summary)

	return summary, nil
}

func (o *Organizer) loadDictionary(ctx context.Context) (labels.Dictionary, error) {
	_, span := tracer.Start(ctx, "load-dictionary")
	defer span.End()

	labelsPath := filepath.Join(o.exportDir, o.cfg.LabelsFileName)
	data, err := o.fileMgr.ReadFile(labelsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", labelsPath)
	}

	dict, err := labels.LoadDictionary(data, o.logger)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", labelsPath)
	}

	folders, tags, unknown := dict.Counts()
	span.SetAttributes(attribute.Int("labels.count", len(dict)))
	o.logger.Info("loaded label mappings", "total", len(dict), "folders", folders, "tags", tags, "unknownKind", unknown)

	return dict, nil
}

// processEmail handles a single metadata document end to end. It never
// returns an error: everything that can go wrong here is recorded in the
// summary and the batch moves on.
func (o *Organizer) processEmail(metaPath, outDir string, dict labels.Dictionary, summary *Summary) {
	metaName := filepath.Base(metaPath)
	baseName := strings.TrimSuffix(metaName, base.MetadataSuffix)
	emlName := baseName + base.EmailSuffix
	emlPath := filepath.Join(filepath.Dir(metaPath), emlName)

	if _, err := o.fileMgr.Stat(emlPath); err != nil {
		o.warn(summary, emlName, fmt.Sprintf("email file not found for %s", metaName))
		summary.Errored++
		return
	}

	folder := o.destinationFolder(metaPath, emlName, dict, summary)
	folder = utils.SanitizeFolderName(folder)

	targetDir := filepath.Join(outDir, folder)
	if !o.dryRun {
		if err := o.fileMgr.MkdirAll(targetDir, 0755); err != nil {
			o.logger.Error("creating folder", "dir", targetDir, "err", err)
			summary.Errored++
			return
		}
	}

	dest := o.uniqueDestination(targetDir, baseName)

	if o.dryRun {
		o.logger.Debug("would copy", "email", emlName, "folder", folder)
	} else if err := o.fileMgr.CopyFile(emlPath, dest); err != nil {
		o.logger.Error("copying email", "email", emlName, "folder", folder, "err", err)
		summary.Errored++
		return
	} else {
		o.logger.Debug("copied", "email", emlName, "folder", folder, "dest", filepath.Base(dest))
	}

	summary.Processed++
	summary.FolderCounts[folder]++
}

// destinationFolder decides the single folder name for one email. A
// metadata document that cannot be parsed files the email under
// InvalidJSONFolder rather than dropping it.
func (o *Organizer) destinationFolder(metaPath, emlName string, dict labels.Dictionary, summary *Summary) string {
	data, err := o.fileMgr.ReadFile(metaPath)
	if err != nil {
		o.warn(summary, emlName, fmt.Sprintf("reading metadata: %v", err))
		return InvalidJSONFolder
	}

	ids, err := metadata.ParseLabelIDs(data)
	if err != nil {
		o.warn(summary, emlName, fmt.Sprintf("metadata does not parse: %v", err))
		return InvalidJSONFolder
	}

	folder, warning := labels.Select(labels.Classify(ids, dict))
	if warning != "" {
		o.warn(summary, emlName, warning)
	}

	return folder
}

// uniqueDestination appends an incrementing numeric suffix before the
// extension until the name is free in the target directory.
func (o *Organizer) uniqueDestination(targetDir, baseName string) string {
	dest := filepath.Join(targetDir, baseName+base.EmailSuffix)
	for counter := 1; ; counter++ {
		if _, err := o.fileMgr.Stat(dest); err != nil {
			return dest
		}
		dest = filepath.Join(targetDir, fmt.Sprintf("%s_%d%s", baseName, counter, base.EmailSuffix))
	}
}

func (o *Organizer) warn(summary *Summary, email, message string) {
	o.logger.Warn(message, "email", email)
	summary.Warnings = append(summary.Warnings, Warning{Email: email, Message: message})
}

func (o *Organizer) logFolderSummary(summary Summary) {
	folders := make([]string, 0, len(summary.FolderCounts))
	for folder := range summary.FolderCounts {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	for _, folder := range folders {
		o.logger.Info("folder", "name", folder, "emails", summary.FolderCounts[folder])
	}
}
