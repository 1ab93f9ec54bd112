package cli

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alexadamm/algo-registry/pkg/jwa"
)

func newJWKCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "jwk <file|->",
		Short: "Show the algorithm a JSON Web Key is used with",
		Long: `Reads a JSON Web Key from a file, or from stdin when the argument is "-",
and prints the algorithm it resolves to. A key without "alg" is matched by
its type and curve.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			s, err := jwa.FromJWK(data)
			if err != nil {
				if errors.Is(err, jwa.ErrNoMatch) {
					return errors.Join(ErrNotFound, err)
				}
				return err
			}
			log.Debug().Str("jwkAlg", s.JWKAlg).Msg("key resolved")
			return printSchemas(cmd.OutOrStdout(), opts.format(), s)
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "reading stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "reading %s", path)
}
