package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"shortlist/internal/search"
	"shortlist/internal/selection"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderPage(w io.Writer, page search.ResultPage, verbose bool) error {
	fmt.Fprintf(w, "page %d/%d, %d candidates total\n",
		page.Page, max(search.TotalPages(page.Total, page.Limit), 1), page.Total)
	if len(page.Candidates) == 0 {
		_, err := fmt.Fprintln(w, "no candidates on this page")
		return err
	}
	return renderCandidates(w, page.Candidates, verbose, nil)
}

// renderCandidates prints one row per candidate. Rows whose email is in
// marked get a leading asterisk.
func renderCandidates(w io.Writer, items []search.ScoredCandidate, verbose bool, marked func(string) bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "\tMATCH\tNAME\tEMAIL\tLOCATION\tPOSITIONS\tEDUCATION"
	if verbose {
		header += "\tSALARY\tSKILLS"
	}
	fmt.Fprintln(tw, header)

	for _, c := range items {
		mark := ""
		if marked != nil && marked(c.Email) {
			mark = "*"
		}
		row := fmt.Sprintf("%s\t%d%% (%d/%d)\t%s\t%s\t%s\t%d\t%s",
			mark, c.MatchScore, c.MatchDetails.SkillsMatch, c.MatchDetails.TotalSkills,
			c.Name, c.Email, c.Location, c.ExperienceCount(), c.HighestEducation())
		if verbose {
			salary := "-"
			if v, ok := c.FullTimeSalary(); ok {
				salary = fmt.Sprintf("$%d", v)
			}
			row += "\t" + salary + "\t" + strings.Join(c.Skills, ", ")
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

func renderTeam(w io.Writer, selected []search.ScoredCandidate) error {
	m := selection.Summarize(selected)
	fmt.Fprintf(w, "%d/%d candidates selected\n", m.Count, selection.MaxSelected)
	if m.Count == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Match score\t%d%% average\n", m.AverageMatchScore)
	fmt.Fprintf(tw, "Locations\t%d (%s)\n", len(m.Locations), strings.Join(m.Locations, ", "))
	fmt.Fprintf(tw, "Education mix\t%d (%s)\n", len(m.EducationLevels), strings.Join(m.EducationLevels, ", "))
	fmt.Fprintf(tw, "Experience\t%d - %d positions, %d avg\n", m.MinExperience, m.MaxExperience, m.AvgExperience)
	fmt.Fprintf(tw, "Salary budget\t$%d total, $%d average\n", m.TotalSalary, m.AverageSalary)
	fmt.Fprintf(tw, "Top skills\t%s\n", strings.Join(m.TopSkills, ", "))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return renderCandidates(w, selected, false, nil)
}
