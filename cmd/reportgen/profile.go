package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// loadProfile читает профиль выгрузки из YAML; неизвестные ключи - ошибка
func loadProfile(path string) (models.ExportOptions, error) {
	var opts models.ExportOptions
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("could not read profile: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return opts, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return opts, fmt.Errorf("could not parse profile %s: %w", path, err)
	}
	return opts, nil
}

// profileFlags - флаги командной строки, перекрывающие профиль
type profileFlags struct {
	summaryOnly       bool
	signatures        bool
	photos            bool
	rootCause         bool
	correctiveActions bool
	attachments       bool
}

const (
	flagSummaryOnly       = "summary-only"
	flagSignatures        = "signatures"
	flagPhotos            = "photos"
	flagRootCause         = "root-cause"
	flagCorrectiveActions = "corrective-actions"
	flagAttachments       = "attachments"
)

func (f *profileFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.summaryOnly, flagSummaryOnly, false, "produce a summary report")
	fs.BoolVar(&f.signatures, flagSignatures, false, "require and include signatures")
	fs.BoolVar(&f.photos, flagPhotos, false, "require at least one photo")
	fs.BoolVar(&f.rootCause, flagRootCause, false, "include root cause analysis")
	fs.BoolVar(&f.correctiveActions, flagCorrectiveActions, false, "include corrective actions")
	fs.BoolVar(&f.attachments, flagAttachments, false, "include attachment list")
}

// apply переносит в opts только флаги, заданные явно
func (f *profileFlags) apply(fs *pflag.FlagSet, opts *models.ExportOptions) {
	set := func(name string, value bool, target *bool) {
		if fs.Changed(name) {
			*target = value
		}
	}
	set(flagSummaryOnly, f.summaryOnly, &opts.SummaryOnly)
	set(flagSignatures, f.signatures, &opts.IncludeSignatures)
	set(flagPhotos, f.photos, &opts.IncludePhotos)
	set(flagRootCause, f.rootCause, &opts.IncludeRootCause)
	set(flagCorrectiveActions, f.correctiveActions, &opts.IncludeCorrectiveActions)
	set(flagAttachments, f.attachments, &opts.IncludeAttachments)
}
