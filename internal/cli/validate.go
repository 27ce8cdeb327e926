package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/brewxml"
)

type fileReport struct {
	File string `json:"file"`
	brewxml.Report
}

func newValidateCmd(st *rootState, stdin io.Reader) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that documents are structurally decodable",
		Long: `Check each document's structure without decoding it.

Use "-" to read from stdin. Exits non-zero if any document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(st, func(cmd *cobra.Command, args []string) error {
			reports := make([]fileReport, 0, len(args))
			for _, path := range args {
				doc, err := readInput(path, stdin)
				if err != nil {
					return err
				}
				reports = append(reports, fileReport{File: path, Report: st.app.codec.Validate(doc)})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					printReport(out, r)
				}
			}

			if invalid := lo.CountBy(reports, func(r fileReport) bool { return !r.Valid }); invalid > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalid, invalid, len(reports))
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print reports as JSON")
	return cmd
}

func printReport(w io.Writer, r fileReport) {
	status := "ok"
	if !r.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(w, "%s: %s (%d recipes)\n", r.File, status, r.RecipeCount)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  error: %s\n", e)
	}
	for _, wn := range r.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", wn)
	}
}
