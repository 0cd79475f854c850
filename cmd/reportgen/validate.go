package main

import (
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/spf13/cobra"
)

func newValidateCmd(d deps, root *rootOptions) *cobra.Command {
	var base bool

	cmd := &cobra.Command{
		Use:   "validate <record.json>",
		Short: "Validate an incident record and print findings as JSON",
		Long: `Validate an incident record and print errors and warnings as JSON.
Without --base the record is checked for the export profile given by --profile and flags.
Exits with a non-zero code when the record has errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(args[0])
			if err != nil {
				return err
			}

			svc := root.newService(d)
			var result models.ValidationResult
			if base {
				result = svc.Validate(cmd.Context(), record)
			} else {
				opts, err := root.exportOptions(cmd)
				if err != nil {
					return err
				}
				result = svc.ValidateForExport(cmd.Context(), record, opts)
			}

			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Valid {
				return errRecordInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&base, "base", false, "check base and category rules only")
	return cmd
}
