package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

func newFindCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find <field=value>...",
		Short: "Show the first algorithm matching every field",
		Long: `Find returns the first algorithm, in declaration order, whose fields equal
all the given values. Integer values are compared as numbers. A non-empty
alg term is an exact id lookup and the other terms are ignored.

Fields: family, alg, name, hash, webcryptoName, jwkAlg, kty, crv,
crvSchemeName, namedCurve.`,
		Example: "  algreg find family=ECDSA hash=SHA-384\n  algreg find kty=3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := algorithm.ParseFilter(args)
			if err != nil {
				return err
			}
			log.Debug().Interface("filter", f).Msg("looking up by filter")

			s, ok := algorithm.By(f)
			if !ok {
				return errors.Wrapf(ErrNotFound, "filter %v", args)
			}
			return printSchemas(cmd.OutOrStdout(), opts.format(), s)
		},
	}
}
