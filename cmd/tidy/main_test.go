package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seborama/proton-mail-export-cli-tidy/pkg/base"
)

func writeFixtureExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	labels := `{
		"Version": 1,
		"Payload": [
			{"ID": "7", "Name": "Sent", "Type": 3}
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, base.LabelsFileName), []byte(labels), 0644))

	meta := `{"Payload": {"LabelIDs": ["7"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "msg-1"+base.MetadataSuffix), []byte(meta), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "msg-1"+base.EmailSuffix), []byte("hello\r\n"), 0644))

	return dir
}

func TestAppOrganizesExport(t *testing.T) {
	dir := writeFixtureExport(t)

	err := newApp().Run([]string{"tidy", dir})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, base.OrganizedDirName, "Sent", "msg-1.eml"))
}

func TestAppDryRunCopiesNothing(t *testing.T) {
	dir := writeFixtureExport(t)

	err := newApp().Run([]string{"tidy", "--dry-run", dir})
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(dir, base.OrganizedDirName))
}

func TestAppRequiresExportDirArgument(t *testing.T) {
	err := newApp().Run([]string{"tidy"})
	assert.Error(t, err)
}

func TestAppRejectsSecondRunIntoSameOutput(t *testing.T) {
	dir := writeFixtureExport(t)

	require.NoError(t, newApp().Run([]string{"tidy", dir}))

	err := newApp().Run([]string{"tidy", dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAppHonoursConfigFile(t *testing.T) {
	dir := writeFixtureExport(t)

	cfgPath := filepath.Join(t.TempDir(), "tidy.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output_dir_name: sorted\n"), 0644))

	err := newApp().Run([]string{"tidy", "--config", cfgPath, dir})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "sorted", "Sent", "msg-1.eml"))
}
