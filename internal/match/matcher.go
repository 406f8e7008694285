package match

// NormalizeFunc maps a raw skill string to its canonical comparison form.
type NormalizeFunc func(string) string

// Result lists job keywords by outcome, in their original display form and
// job-list order. Exact matches precede fuzzy ones in Matched.
type Result struct {
	Matched []string
	Missing []string
}

// Matcher compares normalized skill sets. Threshold is the minimum similarity
// Ratio for a fuzzy pairing, typically 0.85.
type Matcher struct {
	Threshold float64
}

// Match determines which job keywords the resume covers. Phase one pairs
// keywords whose normalized forms are identical. Phase two walks the resume
// skills in order and greedily assigns each the most similar still-unclaimed
// job keyword at or above the threshold, so a job keyword is claimed at most
// once; ties go to the first-seen job keyword. Duplicate normalized forms
// collapse, keeping the last display form seen.
func (m Matcher) Match(resumeSkills, jobKeywords []string, normalize NormalizeFunc) Result {
	resumeNorm, resumeOrder := normalizeSet(resumeSkills, normalize)
	jobNorm, jobOrder := normalizeSet(jobKeywords, normalize)

	res := Result{
		Matched: make([]string, 0, len(jobOrder)),
		Missing: make([]string, 0, len(jobOrder)),
	}

	var pending []string
	for _, n := range jobOrder {
		if _, ok := resumeNorm[n]; ok {
			res.Matched = append(res.Matched, jobNorm[n])
		} else {
			pending = append(pending, n)
		}
	}

	claimed := map[string]struct{}{}
	for _, rn := range resumeOrder {
		best := 0.0
		bestJob := ""
		for _, jn := range pending {
			if _, taken := claimed[jn]; taken {
				continue
			}
			if r := Ratio(rn, jn); r >= m.Threshold && r > best {
				best, bestJob = r, jn
			}
		}
		if bestJob != "" {
			claimed[bestJob] = struct{}{}
		}
	}
	for _, n := range pending {
		if _, ok := claimed[n]; ok {
			res.Matched = append(res.Matched, jobNorm[n])
		} else {
			res.Missing = append(res.Missing, jobNorm[n])
		}
	}
	return res
}

func normalizeSet(items []string, normalize NormalizeFunc) (map[string]string, []string) {
	byNorm := make(map[string]string, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		n := normalize(it)
		if n == "" {
			continue
		}
		if _, ok := byNorm[n]; !ok {
			order = append(order, n)
		}
		byNorm[n] = it
	}
	return byNorm, order
}
