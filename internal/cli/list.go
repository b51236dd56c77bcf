package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"shortlist/internal/search"
)

func addFilterFlags(fs *pflag.FlagSet, p *search.FilterParams) {
	fs.StringVar(&p.Skills, "skills", "", "comma-separated skills, e.g. \"React,Node\"")
	fs.StringVar(&p.SkillMatchType, "match", string(search.MatchAny), "skill match type: any or all")
	fs.StringVar(&p.MinExperience, "min-experience", "", "minimum number of listed positions")
	fs.StringVar(&p.Education, "education", "", "exact highest education level")
	fs.StringVar(&p.Location, "location", "", "location substring")
	fs.StringVar(&p.Name, "name", "", "name substring")
	fs.StringVar(&p.Company, "company", "", "company substring in any position")
	fs.StringVar(&p.RoleName, "role", "", "role substring in any position")
	fs.StringVar(&p.MinSalary, "min-salary", "", "minimum full-time salary expectation")
	fs.StringVar(&p.MaxSalary, "max-salary", "", "maximum full-time salary expectation")
}

func sortModeNames() string {
	names := make([]string, 0, len(search.SortModes))
	for _, m := range search.SortModes {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

func newListCommand(e *env) *cobra.Command {
	var (
		params  search.Params
		sortBy  string
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, api, err := e.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			page, err := api.ListCandidates(ctxOrBackground(cmd), params)
			if err != nil {
				return fmt.Errorf("listing candidates: %w", err)
			}
			page.Candidates = search.Sort(page.Candidates, search.ParseSortMode(sortBy))

			logger.Debug("listed candidates",
				zap.Int("total", page.Total),
				zap.Int("page", page.Page),
				zap.Int("returned", len(page.Candidates)),
			)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), page)
			}
			return renderPage(cmd.OutOrStdout(), page, verbose)
		},
	}

	addFilterFlags(cmd.Flags(), &params.FilterParams)
	cmd.Flags().StringVar(&params.Page, "page", "", "page number (default 1)")
	cmd.Flags().StringVar(&params.Limit, "limit", "", "page size (default 20)")
	cmd.Flags().StringVar(&sortBy, "sort", string(search.SortMatch), "sort within the page: "+sortModeNames())
	cmd.Flags().BoolVar(&asJSON, "output-json", false, "print the raw result page as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include skills and salary columns")
	return cmd
}

func newGetCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <email>",
		Short: "Show a single candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, api, err := e.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			c, err := api.GetCandidate(ctxOrBackground(cmd), args[0])
			if err != nil {
				return fmt.Errorf("getting %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), c)
		},
	}
}

func ctxOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
