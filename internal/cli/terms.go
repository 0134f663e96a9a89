package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func synonymCmd(env *commandEnv) *cobra.Command {
	c := &cobra.Command{
		Use:   "synonym",
		Short: "Manage synonyms",
	}
	c.AddCommand(&cobra.Command{
		Use:   "add <standard-name> <synonym>",
		Short: "Add a synonym, creating the canonical name when needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withSession(func(s *session) error {
				canonical, synonym, err := s.admin.AddSynonym(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "synonym #%d %q added to %s (#%d)\n", synonym.ID, synonym.Text, canonical.Name, canonical.ID)
				return nil
			})
		},
	})
	return c
}

func unitCmd(env *commandEnv) *cobra.Command {
	var standard bool

	add := &cobra.Command{
		Use:   "add <canonical-id> <unit>",
		Short: "Add a unit to a canonical name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonicalID, err := parseCanonicalID(args[0])
			if err != nil {
				return err
			}
			return env.withSession(func(s *session) error {
				unit, err := s.admin.AddUnit(canonicalID, args[1], standard)
				if err != nil {
					return err
				}
				suffix := ""
				if unit.IsStandard {
					suffix = " (standard)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "unit #%d %q added%s\n", unit.ID, unit.Name, suffix)
				return nil
			})
		},
	}
	add.Flags().BoolVar(&standard, "standard", false, "make this the standard unit of the canonical name")

	c := &cobra.Command{
		Use:   "unit",
		Short: "Manage units",
	}
	c.AddCommand(add)
	return c
}

func conversionCmd(env *commandEnv) *cobra.Command {
	c := &cobra.Command{
		Use:   "conversion",
		Short: "Manage unit conversions",
	}
	c.AddCommand(&cobra.Command{
		Use:   "add <canonical-id> <from-unit> <to-unit> <formula>",
		Short: "Add a directed conversion; the formula is an expression of x",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonicalID, err := parseCanonicalID(args[0])
			if err != nil {
				return err
			}
			return env.withSession(func(s *session) error {
				conversion, err := s.admin.AddConversionByNames(canonicalID, args[1], args[2], args[3])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "conversion #%d %s -> %s: %s\n", conversion.ID, args[1], args[2], conversion.Formula)
				return nil
			})
		},
	})
	return c
}
