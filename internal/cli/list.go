package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

func newListCmd(opts *options) *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered algorithms in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemas := algorithm.All()
			if family != "" {
				filtered := schemas[:0]
				for _, s := range schemas {
					if string(s.Family) == family {
						filtered = append(filtered, s)
					}
				}
				schemas = filtered
			}
			if len(schemas) == 0 {
				return ErrNotFound
			}
			return printSchemas(cmd.OutOrStdout(), opts.format(), schemas...)
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list one family (HMAC, RSA-PKCS1v1_5, RSA-PSS, ECDSA, EdDSA, DSA)")
	return cmd
}
