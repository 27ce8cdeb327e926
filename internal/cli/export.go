package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/internal/util"
)

func newExportCmd(st *rootState) *cobra.Command {
	var (
		output  string
		compact bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "Merge the recipes of several documents into one",
		Long: `Decode every FILE and write all of their recipes as a single RECIPES
document, ordered by file path.

With a cache provider the merged document is cached per set of file
contents, so an edited file is never served from a stale entry. --refresh
bumps the generation of every FILE first, which forces a rebuild on every
process sharing the generation store (redis).`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(st, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			docs := make(map[string][]byte, len(args))
			paths := make(map[string]string, len(args))
			for _, path := range args {
				doc, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				// The path leads the ID so sorted IDs follow path order.
				id := util.ContentKey(path, doc)
				docs[id], paths[id] = doc, path
			}
			ids := lo.Keys(docs)

			load := func(ctx context.Context, ids []string) ([]brewxml.Recipe, error) {
				var out []brewxml.Recipe
				for _, id := range ids {
					rs, err := st.app.decode(ctx, docs[id])
					if err != nil {
						return nil, fmt.Errorf("%s: %w", paths[id], err)
					}
					out = append(out, rs...)
				}
				return out, nil
			}

			var (
				out []byte
				err error
			)
			if ec := st.app.exports; ec != nil {
				if refresh {
					for _, id := range ids {
						if err := ec.Invalidate(ctx, id); err != nil {
							return err
						}
					}
				}
				out, err = ec.Export(ctx, ids, !compact, load)
			} else {
				slices.Sort(ids)
				var recipes []brewxml.Recipe
				if recipes, err = load(ctx, ids); err == nil {
					out, err = st.app.codec.Encode(recipes, !compact)
				}
			}
			if err != nil {
				return err
			}

			st.app.log.Info("exported document", brewxml.Fields{
				"files": len(ids), "bytes": len(out), "cached": st.app.exports != nil,
			})
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(output, out, 0o644)
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", `Output file, "-" for stdout`)
	cmd.Flags().BoolVar(&compact, "compact", false, "Write without indentation")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rebuild the cached export")
	return cmd
}
