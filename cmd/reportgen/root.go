package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/incident_reporter/internal/config"
	"github.com/shenikar/incident_reporter/internal/metrics"
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/shenikar/incident_reporter/internal/service"
	"github.com/shenikar/incident_reporter/internal/webhook"
	"github.com/shenikar/incident_reporter/pkg/logger"
	"github.com/spf13/cobra"
)

// errRecordInvalid - запись не прошла валидацию, код выхода 1
var errRecordInvalid = errors.New("incident record failed validation")

// deps - зависимости команд, подменяются в тестах
type deps struct {
	clock  clockwork.Clock
	stderr io.Writer
}

func defaultDeps() deps {
	return deps{clock: clockwork.NewRealClock(), stderr: os.Stderr}
}

// rootOptions - общие флаги всех команд
type rootOptions struct {
	logLevel     string
	profilePath  string
	organisation string
	flags        profileFlags
}

func newRootCmd(d deps) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "reportgen [command]",
		Short:         "Validate incident records and export them as PDF reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&opts.profilePath, "profile", "p", "", "YAML file with export profile flags")
	rootCmd.PersistentFlags().StringVar(&opts.organisation, "organisation", "", "organisation name written to the PDF author field")
	opts.flags.register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newValidateCmd(d, opts))
	rootCmd.AddCommand(newRenderCmd(d, opts))
	return rootCmd
}

// newService собирает сервис без журнала выгрузок и вебхуков
func (o *rootOptions) newService(d deps) service.ReportService {
	log := logger.NewCLI(o.logLevel, d.stderr)
	cfg := &config.Config{ReportOrganisation: o.organisation}
	return service.NewReportService(nil, log, cfg, webhook.NoopPublisher{}, metrics.NoopRecorder{}, d.clock)
}

// exportOptions читает профиль из YAML и накладывает явно заданные флаги
func (o *rootOptions) exportOptions(cmd *cobra.Command) (models.ExportOptions, error) {
	var opts models.ExportOptions
	if o.profilePath != "" {
		var err error
		if opts, err = loadProfile(o.profilePath); err != nil {
			return opts, err
		}
	}
	o.flags.apply(cmd.Flags(), &opts)
	return opts, nil
}

func readRecord(path string) (*models.IncidentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read record: %w", err)
	}
	var record models.IncidentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("could not parse record %s: %w", path, err)
	}
	return &record, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
