package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "get <id|jwk-alg>",
		Short:   "Show one algorithm by COSE id, code or JWK alg name",
		Example: "  algreg get -- -7\n  algreg get HS1\n  algreg get PS384",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := algorithm.Get(args[0])
			if err != nil {
				if errors.Is(err, algorithm.ErrUnsupportedAlgorithm) {
					return errors.Join(ErrNotFound, err)
				}
				return err
			}
			return printSchemas(cmd.OutOrStdout(), opts.format(), s)
		},
	}
}
