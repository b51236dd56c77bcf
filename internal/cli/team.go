package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shortlist/internal/domain/candidate"
	"shortlist/internal/domain/matching"
	"shortlist/internal/search"
	"shortlist/internal/selection"
)

func newTeamCommand(e *env) *cobra.Command {
	var (
		skills string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "team <email>...",
		Short: "Summarize a shortlist of up to 5 candidates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, api, err := e.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			requested := matching.ParseSkills(skills)
			store := selection.NewStore(selection.InitialState())

			for _, email := range args {
				if store.State().SelectionFull() {
					logger.Warn("shortlist is full, ignoring", zap.String("email", email), zap.Int("max", selection.MaxSelected))
					continue
				}
				c, err := api.GetCandidate(ctxOrBackground(cmd), email)
				if err != nil {
					return fmt.Errorf("getting %s: %w", email, err)
				}
				store.Select(scoreOne(c, requested))
			}

			selected := store.State().Selected
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), selection.Summarize(selected))
			}
			return renderTeam(cmd.OutOrStdout(), selected)
		},
	}

	cmd.Flags().StringVar(&skills, "skills", "", "score members against these comma-separated skills")
	cmd.Flags().BoolVar(&asJSON, "output-json", false, "print the metrics as JSON")
	return cmd
}

func scoreOne(c candidate.Candidate, requested []string) search.ScoredCandidate {
	return search.ScoreAll([]candidate.Candidate{c}, requested)[0]
}
