package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return errors.Newf("unknown output format %q, expected table, json or yaml", format)
}

// printSchemas writes schemas in the given format. A single schema is
// written as an object in json and yaml, several as a list.
func printSchemas(w io.Writer, format string, schemas ...algorithm.Schema) error {
	var v any = schemas
	if len(schemas) == 1 {
		v = schemas[0]
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding json")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	}
	return printTable(w, schemas)
}

func printTable(w io.Writer, schemas []algorithm.Schema) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ALG\tJWK\tFAMILY\tHASH\tWEBCRYPTO\tKTY\tCURVE")
	for _, s := range schemas {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Alg, s.JWKAlg, s.Family, s.Hash, s.WebcryptoName, orDash(kty(s)), orDash(curve(s)))
	}
	return tw.Flush()
}

func kty(s algorithm.Schema) string {
	if s.Kty == 0 {
		return ""
	}
	return s.Kty.String()
}

func curve(s algorithm.Schema) string {
	switch {
	case s.NamedCurve != "":
		return s.NamedCurve
	case s.Crv != 0:
		return fmt.Sprintf("%d", s.Crv)
	}
	return ""
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
