package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func importCmd(env *commandEnv) *cobra.Command {
	var standardName string

	c := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import synonyms from a JSON array of {standard_name, synonym}",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			return env.withSession(func(s *session) error {
				summary, err := s.transfer.Import(file, standardName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d synonyms, skipped %d\n", summary.Added, summary.Skipped)
				return nil
			})
		},
	}
	c.Flags().StringVar(&standardName, "standard-name", "", "import only entries of this canonical name")
	return c
}

func exportCmd(env *commandEnv) *cobra.Command {
	var standardName string

	c := &cobra.Command{
		Use:   "export <file.json|->",
		Short: "Export synonyms as JSON; - writes to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withSession(func(s *session) error {
				if args[0] == "-" {
					return s.transfer.Export(cmd.OutOrStdout(), standardName)
				}

				file, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				if err := s.transfer.Export(file, standardName); err != nil {
					_ = file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported synonyms to %s\n", args[0])
				return nil
			})
		},
	}
	c.Flags().StringVar(&standardName, "standard-name", "", "export only synonyms of this canonical name")
	return c
}
