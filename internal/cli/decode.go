package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/codec"
)

var decodeFormats = []string{"json", "yaml", "msgpack", "cbor"}

func newDecodeCmd(st *rootState, stdin io.Reader) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode a document and print its recipes",
		Long: fmt.Sprintf(`Decode a document and print its recipes.

Use "-" to read from stdin. Formats: %v. msgpack and cbor are binary and
use the same field names as json.`, decodeFormats),
		Args: cobra.ExactArgs(1),
		RunE: withApp(st, func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(args[0], stdin)
			if err != nil {
				return err
			}
			recipes, err := st.app.decode(cmd.Context(), doc)
			if err != nil {
				return err
			}
			out, err := render(recipes, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml, msgpack, cbor")
	return cmd
}

func render(recipes []brewxml.Recipe, format string) ([]byte, error) {
	switch format {
	case "json":
		b, err := json.MarshalIndent(recipes, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml":
		return toYAML(recipes)
	case "msgpack":
		return codec.Msgpack[[]brewxml.Recipe]{}.Encode(recipes)
	case "cbor":
		c, err := codec.NewCBOR[[]brewxml.Recipe](codec.CBOROptions{Deterministic: true})
		if err != nil {
			return nil, err
		}
		return c.Encode(recipes)
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %v)", format, decodeFormats)
	}
}

// toYAML goes through JSON so YAML keys match the json tags and field order.
func toYAML(recipes []brewxml.Recipe) ([]byte, error) {
	b, err := json.Marshal(recipes)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle drops the flow and quoting styles the JSON input carried.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
