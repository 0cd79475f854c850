package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func injuryRecord() *models.IncidentRecord {
	return &models.IncidentRecord{
		ID:             uuid.New(),
		ReferenceCode:  "INC-2026-0042",
		Category:       models.CategoryPersonalInjury,
		DateOfIncident: "2026-10-19",
		TimeOfIncident: "14:30",
		Location:       models.Location{ManualAddress: "Unit 4, Riverside Trading Estate, Leeds"},
		ReportedBy:     models.Person{Name: "Alex Morgan", Email: "alex@example.com", Phone: "+44 113 496 0000"},
		IncidentDescription: models.IncidentDescription{
			WhatHappened: "Operative slipped on a wet floor near the loading bay.",
		},
		PersonInvolved: &models.PersonInvolved{FullName: "Jamie Patel"},
		InjuryDetails: &models.InjuryDetails{
			NatureOfInjury:    "Sprained wrist",
			Severity:          models.SeverityMinor,
			BodyPartsAffected: []string{"Right wrist"},
			PPEUsed:           &models.PPEUsage{Worn: true},
		},
	}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeRecord(t *testing.T, dir string, record *models.IncidentRecord) string {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	return writeFile(t, dir, "record.json", data)
}

// execute запускает команду с фиксированными часами и возвращает stdout и stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(deps{clock: clockwork.NewFakeClockAt(now), stderr: &stderr})
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidate_BaseRules(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, injuryRecord())

	stdout, _, err := execute(t, "validate", "--base", path)

	require.NoError(t, err)
	var result models.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_InvestigationProfileFails(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, injuryRecord())

	stdout, _, err := execute(t, "validate", path)

	assert.ErrorIs(t, err, errRecordInvalid)
	var result models.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Valid)
	assert.Contains(t, stdout, "rootCauseAnalysis.directCause")
	assert.Contains(t, stdout, `"correctiveActions"`)
}

func TestValidate_ProfileFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, injuryRecord())
	profile := writeFile(t, dir, "summary.yaml", []byte("summaryOnly: true\nincludePhotos: true\n"))

	// профиль требует фото, флаг снимает требование
	_, _, err := execute(t, "validate", "--profile", profile, path)
	assert.ErrorIs(t, err, errRecordInvalid)

	stdout, _, err := execute(t, "validate", "--profile", profile, "--photos=false", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"valid": true`)
}

func TestValidate_BadRecordFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "record.json", []byte("{not json"))

	_, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse record")

	_, _, err = execute(t, "validate", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read record")
}

func TestRender_WritesReportToDir(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, injuryRecord())
	outDir := filepath.Join(dir, "reports")

	stdout, _, err := execute(t, "render", "--summary-only", "--dir", outDir, path)

	require.NoError(t, err)
	expected := filepath.Join(outDir, "Summary_INC-2026-0042_2026-10-19.pdf")
	assert.Contains(t, stdout, expected)
	data, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not remain")
}

func TestRender_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, injuryRecord())
	output := filepath.Join(dir, "out.pdf")

	_, _, err := execute(t, "render", "--summary-only", "-o", output, "--organisation", "Acme Facilities Ltd", path)

	require.NoError(t, err)
	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRender_WarnsAboutReplacedCharacters(t *testing.T) {
	dir := t.TempDir()
	record := injuryRecord()
	record.IncidentDescription.WhatHappened += " First aid was given by 李雷."
	path := writeRecord(t, dir, record)

	_, stderr, err := execute(t, "render", "--summary-only", "--dir", dir, path)

	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: 2 character(s) not supported by the report font")
}

func TestRender_InvalidRecordWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeRecord(t, dir, injuryRecord())
	outDir := filepath.Join(dir, "reports")

	_, stderr, err := execute(t, "render", "--dir", outDir, path)

	assert.ErrorIs(t, err, errRecordInvalid)
	assert.Contains(t, stderr, "rootCauseAnalysis.directCause")
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	opts, err := loadProfile(writeFile(t, dir, "full.yaml", []byte(
		"includeSignatures: true\nincludeRootCause: true\nincludeCorrectiveActions: true\nincludeAttachments: true\n")))
	require.NoError(t, err)
	assert.Equal(t, models.ExportOptions{
		IncludeSignatures:        true,
		IncludeRootCause:         true,
		IncludeCorrectiveActions: true,
		IncludeAttachments:       true,
	}, opts)
	assert.Equal(t, "Investigation", opts.ProfileName())

	opts, err = loadProfile(writeFile(t, dir, "empty.yaml", nil))
	require.NoError(t, err)
	assert.Equal(t, models.ExportOptions{}, opts)

	_, err = loadProfile(writeFile(t, dir, "typo.yaml", []byte("summary: true\n")))
	assert.Error(t, err)
}
