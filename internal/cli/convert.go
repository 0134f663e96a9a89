package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/labunify/internal/services"
)

func convertCmd(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <canonical-id> <value> <from-unit> <to-unit>",
		Short: "Convert a value between two units of a canonical name",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonicalID, err := parseCanonicalID(args[0])
			if err != nil {
				return err
			}
			value, err := parseValue(args[1])
			if err != nil {
				return err
			}

			return env.withSession(func(s *session) error {
				result, err := s.conversions.Convert(value, args[2], args[3], canonicalID)
				if err != nil {
					return err
				}
				printConversion(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}

func toStandardCmd(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "to-standard <canonical-id> <value> <from-unit>",
		Short: "Convert a value to the standard unit of a canonical name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonicalID, err := parseCanonicalID(args[0])
			if err != nil {
				return err
			}
			value, err := parseValue(args[1])
			if err != nil {
				return err
			}

			return env.withSession(func(s *session) error {
				result, err := s.conversions.ConvertToStandard(value, args[2], canonicalID)
				if err != nil {
					return err
				}
				printConversion(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}

func parseCanonicalID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("canonical id %q must be a positive integer", raw)
	}
	return uint(id), nil
}

func parseValue(raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number", raw)
	}
	return value, nil
}

func printConversion(out io.Writer, result services.ConversionResult) {
	fmt.Fprintf(out, "%s %s (%s, %d steps)\n",
		strconv.FormatFloat(result.Value, 'g', -1, 64), result.ToUnit, result.Method, len(result.Path))
}
