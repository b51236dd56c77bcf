package matching

import (
	"math"
	"strings"
)

type Result struct {
	MatchScore  int
	SkillsMatch int
	TotalSkills int
	// Matched holds one flag per requested skill, in request order.
	Matched []bool
}

// AllMatched reports whether every requested skill was found.
func (r Result) AllMatched() bool {
	return r.TotalSkills > 0 && r.SkillsMatch == r.TotalSkills
}

// AnyMatched reports whether at least one requested skill was found.
func (r Result) AnyMatched() bool {
	return r.SkillsMatch > 0
}

// ParseSkills splits a comma-delimited skill query. Entries are trimmed,
// blanks are dropped and case-insensitive duplicates keep the first spelling.
func ParseSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Score counts the requested skills contained, case-insensitively, in at
// least one candidate skill. A candidate without skills scores 0.
func Score(candidateSkills []string, requested []string) Result {
	res := Result{TotalSkills: len(requested), Matched: make([]bool, len(requested))}
	if len(requested) == 0 || len(candidateSkills) == 0 {
		return res
	}

	have := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		have = append(have, strings.ToLower(s))
	}

	for i, want := range requested {
		want = strings.ToLower(want)
		for _, h := range have {
			if strings.Contains(h, want) {
				res.Matched[i] = true
				res.SkillsMatch++
				break
			}
		}
	}

	score := int(math.Round(100 * float64(res.SkillsMatch) / float64(res.TotalSkills)))
	res.MatchScore = clampInt(score, 0, 100)
	return res
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
