// Package cli implements the algreg command line tool.
package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "ALGREG"

// ErrNotFound is returned by lookups that match no registry entry.
var ErrNotFound = errors.New("no matching algorithm")

type options struct {
	v *viper.Viper
}

func (o *options) format() string {
	return strings.ToLower(o.v.GetString("format"))
}

// NewRootCmd builds the algreg command tree. Flags can also be set through
// ALGREG_* environment variables, e.g. ALGREG_FORMAT=json.
func NewRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}
	opts.v.SetEnvPrefix(envPrefix)
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "algreg",
		Short:         "Inspect the signature algorithm registry",
		Long:          "algreg looks up signature algorithm metadata by COSE id, JWK alg name, field filter or JSON Web Key.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(opts.v.GetString("log-level"), cmd.ErrOrStderr())
			return validateFormat(opts.format())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("format", "o", formatTable, "output format: table, json or yaml")
	flags.String("log-level", "warn", "set the log level: trace, debug, info, warn, error or none")
	for _, name := range []string{"format", "log-level"} {
		_ = opts.v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newFindCmd(opts),
		newJWKCmd(opts),
	)
	return cmd
}
