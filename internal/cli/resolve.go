package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/labunify/internal/services"
	"golang.org/x/sync/errgroup"
)

func resolveCmd(env *commandEnv) *cobra.Command {
	var (
		threshold float64
		file      string
		workers   int
	)

	c := &cobra.Command{
		Use:   "resolve [input]",
		Short: "Map a free-text analysis name to its canonical name",
		Long: "Resolve one name given as argument, or every non-empty line of --file.\n" +
			"Batch results are printed in input order.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (len(args) == 0) {
				return fmt.Errorf("pass either one input or --file")
			}
			if workers < 1 {
				return fmt.Errorf("--workers must be at least 1")
			}

			return env.withSession(func(s *session) error {
				if !cmd.Flags().Changed("threshold") {
					threshold = s.config.DefaultThreshold
				}

				inputs := args
				if file != "" {
					lines, err := readInputLines(file)
					if err != nil {
						return err
					}
					inputs = lines
				}

				results, err := resolveAll(cmd.Context(), s.unification, inputs, threshold, workers)
				if err != nil {
					return err
				}
				for _, result := range results {
					printResolution(cmd.OutOrStdout(), s, result)
				}
				return nil
			})
		},
	}

	c.Flags().Float64VarP(&threshold, "threshold", "t", 0, "minimum fuzzy score 0..100 (default from config)")
	c.Flags().StringVarP(&file, "file", "f", "", "resolve every line of this file")
	c.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent resolutions in batch mode")
	return c
}

func readInputLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return lines, nil
}

// resolveAll resolves inputs with at most workers concurrent calls. The
// result slice is index-aligned with inputs.
func resolveAll(ctx context.Context, resolver *services.UnificationService, inputs []string, threshold float64, workers int) ([]services.ResolutionResult, error) {
	results := make([]services.ResolutionResult, len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for index, input := range inputs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := resolver.Resolve(input, threshold)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", input, err)
			}
			results[index] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printResolution(out io.Writer, s *session, result services.ResolutionResult) {
	if !result.Found() {
		fmt.Fprintln(out, s.i18n.Translatef(s.i18n.DefaultLanguage(), "resolve.not_found", result.Input))
		return
	}
	fmt.Fprintf(out, "%s\t%s\t#%d\t%s\t%.1f\n", result.Input, result.Canonical.Name, result.Canonical.ID, result.Tier, result.Score)
}
