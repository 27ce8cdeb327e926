// Package cli implements the brewxml command.
package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrInvalid is returned by validate when at least one document is invalid.
var ErrInvalid = errors.New("invalid document")

type rootState struct {
	configFile string
	v          *viper.Viper
	app        *app
}

// NewRootCmd builds the command tree. stdin, stdout and stderr are
// injectable for tests.
func NewRootCmd(version string, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	st := &rootState{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "brewxml",
		Short: "Validate, decode, re-encode and merge BeerXML recipe documents",
		Long: `brewxml reads BeerXML 1.0 documents leniently and writes them canonically.

Unparsable values fall back to defaults, invalid ingredients and recipes are
skipped, and output always uses a RECIPES root with UTF-8 encoding.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(st.v, st.configFile)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, stdout, stderr)
			if err != nil {
				return err
			}
			st.app = a
			return nil
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&st.configFile, "config", "c", "", "Config file (yaml, json or toml)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-backend", "zap", "Logger: zap, logrus, slog")
	pf.String("cache", "none", "Cache provider: none, ristretto, bigcache, redis")
	pf.String("metrics-textfile", "", "Write Prometheus counters to this file on exit")
	_ = st.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = st.v.BindPFlag("log.backend", pf.Lookup("log-backend"))
	_ = st.v.BindPFlag("cache.provider", pf.Lookup("cache"))
	_ = st.v.BindPFlag("metrics-textfile", pf.Lookup("metrics-textfile"))

	rootCmd.AddCommand(
		newValidateCmd(st, stdin),
		newDecodeCmd(st, stdin),
		newConvertCmd(st, stdin),
		newExportCmd(st),
	)
	return rootCmd
}

// withApp releases the app once fn returns. Cobra skips post-run hooks when
// RunE fails, so cleanup lives here.
func withApp(st *rootState, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer func() {
			if st.app != nil {
				st.app.close()
				st.app = nil
			}
		}()
		return fn(cmd, args)
	}
}
