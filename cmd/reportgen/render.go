package main

import (
	"fmt"
	"path/filepath"

	reporterrors "github.com/shenikar/incident_reporter/internal/errors"
	"github.com/shenikar/incident_reporter/internal/render"
	"github.com/shenikar/incident_reporter/internal/service"
	"github.com/spf13/cobra"
)

func newRenderCmd(d deps, root *rootOptions) *cobra.Command {
	var output, outDir string

	cmd := &cobra.Command{
		Use:   "render <record.json>",
		Short: "Render an incident record as a PDF report",
		Long: `Validate an incident record for the export profile and write the PDF report.
The file name defaults to {Summary|Investigation}_{reference}_{date}.pdf in --dir.
Nothing is written when the record fails validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(args[0])
			if err != nil {
				return err
			}
			opts, err := root.exportOptions(cmd)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = filepath.Join(outDir, service.ReportFilename(opts, record.ReferenceCode, d.clock.Now()))
			}
			sink, err := render.NewFileSink(path)
			if err != nil {
				return err
			}

			report, err := root.newService(d).Generate(cmd.Context(), record, opts, sink)
			if reporterrors.IsCategory(err, reporterrors.CategoryValidation) {
				_ = writeJSON(cmd.ErrOrStderr(), report.Validation)
				return errRecordInvalid
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d page(s), %d bytes\n", path, report.Render.PageCount, report.Render.Bytes)
			for _, w := range report.Validation.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Field, w.Message)
			}
			if n := report.Render.UnsupportedCharacters; n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d character(s) not supported by the report font were replaced with %q\n", n, render.ReplacementRune)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF file (overrides --dir)")
	cmd.Flags().StringVar(&outDir, "dir", ".", "directory for the generated report")
	return cmd
}
