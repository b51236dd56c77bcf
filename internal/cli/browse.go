package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shortlist/internal/search"
	"shortlist/internal/selection"
)

const (
	PromptNext     = "Next page"
	PromptPrev     = "Previous page"
	PromptAdd      = "Add to shortlist"
	PromptRemove   = "Remove from shortlist"
	PromptTeam     = "Show shortlist"
	PromptSort     = "Sort page"
	PromptRetry    = "Retry"
	PromptQuit     = "Quit"
	promptBackItem = "back"
)

var errExit = errors.New("exit requested")

type chooser func(label string, items []string) (int, error)

func promptChoose(label string, items []string) (int, error) {
	p := promptui.Select{Label: label, Items: items, Size: 10}
	i, _, err := p.Run()
	return i, err
}

type browser struct {
	ctrl   *selection.Controller
	out    io.Writer
	sort   search.SortMode
	choose chooser
	logger *zap.Logger
}

func newBrowseCommand(e *env) *cobra.Command {
	var (
		filters search.FilterParams
		sortBy  string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through candidates interactively and build a shortlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, api, err := e.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, _ := e.config()
			b := &browser{
				ctrl:   selection.NewController(selection.NewStore(selection.InitialState()), api, cfg.Timeout, logger),
				out:    cmd.OutOrStdout(),
				sort:   search.ParseSortMode(sortBy),
				choose: promptChoose,
				logger: logger,
			}
			return b.run(ctxOrBackground(cmd), filters)
		},
	}

	addFilterFlags(cmd.Flags(), &filters)
	cmd.Flags().StringVar(&sortBy, "sort", string(search.SortMatch), "sort within the page: "+sortModeNames())
	return cmd
}

func (b *browser) run(ctx context.Context, filters search.FilterParams) error {
	patch := selection.FilterPatch{
		Skills:         &filters.Skills,
		SkillMatchType: &filters.SkillMatchType,
		MinExperience:  &filters.MinExperience,
		Education:      &filters.Education,
		Location:       &filters.Location,
		Name:           &filters.Name,
		Company:        &filters.Company,
		RoleName:       &filters.RoleName,
		MinSalary:      &filters.MinSalary,
		MaxSalary:      &filters.MaxSalary,
	}
	if err := b.ctrl.UpdateFilters(ctx, patch); err != nil {
		b.logger.Warn("loading candidates", zap.Error(err))
	}

	for {
		b.render()
		_, action, err := b.pick("Action", b.actions())
		if err != nil {
			return err
		}
		if err := b.handle(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func (b *browser) pick(label string, items []string) (int, string, error) {
	i, err := b.choose(label, items)
	if err != nil {
		return -1, "", err
	}
	if i < 0 || i >= len(items) {
		return -1, "", fmt.Errorf("invalid choice %d", i)
	}
	return i, items[i], nil
}

func (b *browser) actions() []string {
	st := b.ctrl.Store().State()
	items := []string{}
	if st.Err != nil {
		items = append(items, PromptRetry)
	}
	if st.Pagination.Page < st.TotalPages() {
		items = append(items, PromptNext)
	}
	if st.Pagination.Page > 1 {
		items = append(items, PromptPrev)
	}
	if len(st.Candidates) > 0 && !st.SelectionFull() {
		items = append(items, PromptAdd)
	}
	if len(st.Selected) > 0 {
		items = append(items, PromptRemove, PromptTeam)
	}
	return append(items, PromptSort, PromptQuit)
}

func (b *browser) handle(ctx context.Context, action string) error {
	st := b.ctrl.Store().State()

	switch action {
	case PromptNext, PromptPrev:
		n := st.Pagination.Page + 1
		if action == PromptPrev {
			n = st.Pagination.Page - 1
		}
		return b.softFail(b.ctrl.GoToPage(ctx, n))

	case PromptRetry:
		return b.softFail(b.ctrl.Retry(ctx))

	case PromptAdd:
		page := search.Sort(st.Candidates, b.sort)
		labels := make([]string, 0, len(page)+1)
		for _, c := range page {
			labels = append(labels, fmt.Sprintf("%s <%s> %d%%", c.Name, c.Email, c.MatchScore))
		}
		i, _, err := b.pick("Add candidate", append(labels, promptBackItem))
		if err != nil || i == len(page) {
			return err
		}
		b.ctrl.Store().Select(page[i])
		return nil

	case PromptRemove:
		labels := make([]string, 0, len(st.Selected)+1)
		for _, c := range st.Selected {
			labels = append(labels, fmt.Sprintf("%s <%s>", c.Name, c.Email))
		}
		i, _, err := b.pick("Remove candidate", append(labels, promptBackItem))
		if err != nil || i == len(st.Selected) {
			return err
		}
		b.ctrl.Store().Remove(st.Selected[i].Email)
		return nil

	case PromptTeam:
		return renderTeam(b.out, st.Selected)

	case PromptSort:
		modes := make([]string, 0, len(search.SortModes))
		for _, m := range search.SortModes {
			modes = append(modes, string(m))
		}
		_, mode, err := b.pick("Sort by", modes)
		if err != nil {
			return err
		}
		b.sort = search.ParseSortMode(mode)
		return nil

	case PromptQuit:
		return errExit

	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// softFail keeps the session alive on fetch errors; they are already in
// the state and offered for retry.
func (b *browser) softFail(err error) error {
	if err != nil {
		b.logger.Warn("fetch failed", zap.Error(err))
	}
	return nil
}

func (b *browser) render() {
	st := b.ctrl.Store().State()
	if st.Loading {
		fmt.Fprintln(b.out, "loading...")
	}
	if st.Err != nil {
		fmt.Fprintf(b.out, "error: %v\n", st.Err)
	}
	page := search.ResultPage{
		Total:      st.Pagination.Total,
		Page:       st.Pagination.Page,
		Limit:      st.Pagination.Limit,
		Candidates: search.Sort(st.Candidates, b.sort),
	}
	_ = renderPage(b.out, page, false)
	fmt.Fprintf(b.out, "shortlist: %d/%d (sorted by %s)\n\n", len(st.Selected), selection.MaxSelected, b.sort)
}
