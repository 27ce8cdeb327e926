package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/brewxml"
)

func newConvertCmd(st *rootState, stdin io.Reader) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Re-encode a document canonically",
		Long: `Decode IN leniently and write it back to OUT in canonical form.

Use "-" for stdin or stdout. Skipped ingredients and recipes are reported
on stderr.`,
		Args: cobra.ExactArgs(2),
		RunE: withApp(st, func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(args[0], stdin)
			if err != nil {
				return err
			}
			recipes, err := st.app.decode(cmd.Context(), doc)
			if err != nil {
				return err
			}
			out, err := st.app.codec.Encode(recipes, !compact)
			if err != nil {
				return err
			}
			st.app.log.Info("converted document", brewxml.Fields{
				"in": args[0], "recipes": len(recipes), "bytes": len(out),
			})
			if args[1] == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(args[1], out, 0o644)
		}),
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Write without indentation")
	return cmd
}
