package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarensabesk/HireAI/internal/config"
	"github.com/sarensabesk/HireAI/internal/domain"
)

// stubEngine returns fixed keyword sets depending on which text it sees.
type stubEngine struct {
	byMarker map[string][]string
}

func (e stubEngine) Normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (e stubEngine) Extract(text string, max int) []string {
	for marker, kws := range e.byMarker {
		if strings.Contains(text, marker) {
			if max > 0 && len(kws) > max {
				return kws[:max]
			}
			return kws
		}
	}
	return nil
}

func (e stubEngine) StopWords() []string { return []string{"the", "and", "a", "of"} }

type stubSents struct{}

func (stubSents) Sentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s+".")
		}
	}
	return out
}

type stubAI struct {
	response string
	err      error
	prompts  []string
}

func (a *stubAI) Generate(_ domain.Context, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	if a.err != nil {
		return "", a.err
	}
	return a.response, nil
}

// passCleaner accepts already-valid JSON and rejects everything else.
type passCleaner struct{}

func (passCleaner) CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if json.Valid([]byte(s)) {
		return s
	}
	return ""
}

type recordingRepo struct {
	saved []domain.Analysis
}

func (r *recordingRepo) Save(_ domain.Context, a domain.Analysis) (string, error) {
	r.saved = append(r.saved, a)
	return fmt.Sprintf("id-%d", len(r.saved)), nil
}

func (r *recordingRepo) ListRecent(_ domain.Context, limit int) ([]domain.Analysis, error) {
	if limit > len(r.saved) {
		limit = len(r.saved)
	}
	return r.saved[:limit], nil
}

func testCfg() config.Config {
	return config.Config{
		SkillMatchWeight: 0.60,
		SemanticWeight:   0.30,
		DensityBonusCap:  10,
		FuzzyThreshold:   0.85,
		MinJobWords:      10,
		JobKeywordCap:    30,
		ResumeKeywordCap: 60,
		HistoryLimit:     20,
	}
}

const jobText = "JOB We need a backend engineer with python docker and kubernetes experience to build scalable services"

var testResume = domain.Resume{
	Filename: "resume.txt",
	Text:     "RESUME Senior engineer. Built python services with docker. Led a platform team. More python work followed.",
	Domain:   "Software Engineering",
}

func newTestService(ai domain.AIClient, repo domain.AnalysisRepository) *AnalyzeService {
	engine := stubEngine{byMarker: map[string][]string{
		"JOB":    {"python", "docker", "kubernetes", "terraform"},
		"RESUME": {"python", "docker", "leadership"},
	}}
	return NewAnalyzeService(testCfg(), engine, stubSents{}, ai, passCleaner{}, repo)
}

func TestAnalyzeTooShortGate(t *testing.T) {
	t.Parallel()
	s := newTestService(nil, nil)
	a := s.Analyze(context.Background(), testResume, "too short job text")

	require.True(t, a.Failed())
	assert.Contains(t, a.Error, "too short (4 words)")
	assert.Zero(t, a.Score)
	assert.Empty(t, a.Keywords.Matching)
}

func TestAnalyzeNoKeywordsGate(t *testing.T) {
	t.Parallel()
	s := newTestService(nil, nil)
	// long enough to pass the word gate, but no marker, so extraction is empty
	a := s.Analyze(context.Background(), testResume,
		"this description has plenty of words but yields nothing recognizable at all here truly")

	require.True(t, a.Failed())
	assert.Contains(t, a.Error, "Could not extract meaningful keywords")
	assert.Zero(t, a.Score)
}

func TestAnalyzeEnrichmentAloneCanPassKeywordGate(t *testing.T) {
	t.Parallel()
	// rule extraction finds nothing in the job text, but the generator still
	// gets a chance to supply skills, so the keyword gate does not fire
	ai := &stubAI{response: `["Python", "Docker"]`}
	s := newTestService(ai, nil)
	a := s.Analyze(context.Background(), testResume,
		"this description has plenty of words but yields nothing recognizable at all here truly")

	require.False(t, a.Failed())
	assert.Equal(t, 2, a.Keywords.TotalJobKeywords)
	assert.ElementsMatch(t, []string{"Python", "Docker"}, a.Keywords.Matching)
	assert.Positive(t, a.Score)
}

func TestAnalyzeScoring(t *testing.T) {
	t.Parallel()
	s := newTestService(nil, nil)
	a := s.Analyze(context.Background(), testResume, jobText)

	require.False(t, a.Failed())
	// 2 of 4 job keywords matched exactly
	assert.ElementsMatch(t, []string{"python", "docker"}, a.Keywords.Matching)
	assert.ElementsMatch(t, []string{"kubernetes", "terraform"}, a.Keywords.Missing)
	assert.Equal(t, 4, a.Keywords.TotalJobKeywords)
	assert.Equal(t, 3, a.Keywords.TotalResumeSkills)
	assert.Equal(t, 2, a.Keywords.TotalMatched)
	assert.InDelta(t, 50.0, a.Keywords.MatchPercentage, 0.01)
	assert.InDelta(t, 50.0, a.Breakdown.SkillMatch, 0.01)

	// blended total holds within rounding noise
	blended := a.Breakdown.SkillMatch*0.60 + a.Breakdown.Semantic*0.30 + a.Breakdown.DensityBonus
	assert.InDelta(t, blended, a.Score, 0.05)
	assert.GreaterOrEqual(t, a.Score, 0.0)
	assert.LessOrEqual(t, a.Score, 100.0)
}

func TestAnalyzeDensityCounts(t *testing.T) {
	t.Parallel()
	s := newTestService(nil, nil)
	a := s.Analyze(context.Background(), testResume, jobText)

	counts := map[string]int{}
	for _, d := range a.Keywords.Density {
		counts[d.Keyword] = d.Count
	}
	// "python" appears twice in the resume, "docker" once
	assert.Equal(t, 2, counts["python"])
	assert.Equal(t, 1, counts["docker"])
	// density is sorted by count, highest first
	require.NotEmpty(t, a.Keywords.Density)
	assert.Equal(t, "python", a.Keywords.Density[0].Keyword)
}

func TestAnalyzeSummaryFirstSentences(t *testing.T) {
	t.Parallel()
	s := newTestService(nil, nil)
	a := s.Analyze(context.Background(), testResume, jobText)

	assert.Contains(t, a.Summary, "Senior engineer")
	// only the first three sentences survive
	assert.NotContains(t, a.Summary, "More python work")
}

func TestAnalyzeATSBuckets(t *testing.T) {
	t.Parallel()
	cases := []struct {
		score float64
		level string
		label string
	}{
		{92, "high", "Excellent Match"},
		{85, "high", "Excellent Match"},
		{70, "medium", "Strong Match"},
		{50, "medium", "Good Match"},
		{49.99, "low", "Needs Improvement"},
		{0, "low", "Needs Improvement"},
	}
	for _, tc := range cases {
		st := atsStatus(tc.score)
		assert.Equal(t, tc.level, st.Level, "score %v", tc.score)
		assert.Equal(t, tc.label, st.Label, "score %v", tc.score)
	}
}

func TestAnalyzeFallbackRecommendationsWithoutAI(t *testing.T) {
	t.Parallel()
	s := newTestService(nil, nil)
	a := s.Analyze(context.Background(), testResume, jobText)

	assert.Equal(t, fallbackRecommendations, a.Recommendations)
	assert.Empty(t, a.SkillGaps.Gaps)
}

func TestAnalyzeGeneratorFailureDegrades(t *testing.T) {
	t.Parallel()
	ai := &stubAI{err: fmt.Errorf("provider down")}
	s := newTestService(ai, nil)
	a := s.Analyze(context.Background(), testResume, jobText)

	require.False(t, a.Failed())
	assert.Equal(t, fallbackRecommendations, a.Recommendations)
	assert.Empty(t, a.SkillGaps.Gaps)
}

func TestAnalyzeParsesNumberedRecommendations(t *testing.T) {
	t.Parallel()
	ai := &stubAI{response: "Here you go:\n1. Keywords: add kubernetes\nsome noise\n2. Format: tighten summary\n3. Metrics: quantify impact\n4. Verbs: lead with actions\n5. Extra: ignored"}
	s := newTestService(ai, nil)

	recs := s.recommendations(context.Background(), testResume, jobText, 60, []string{"kubernetes"})
	require.Len(t, recs, 4)
	assert.Equal(t, "1. Keywords: add kubernetes", recs[0])
	assert.Equal(t, "4. Verbs: lead with actions", recs[3])
}

func TestAnalyzeSkillGapParsing(t *testing.T) {
	t.Parallel()
	ai := &stubAI{response: `{"current_skills": ["python"], "skill_gaps": [{"skill": "kubernetes", "importance": "high", "resources": ["docs"]}]}`}
	s := newTestService(ai, nil)

	report := s.skillGaps(context.Background(), testResume, jobText)
	require.Len(t, report.Gaps, 1)
	assert.Equal(t, "kubernetes", report.Gaps[0].Skill)
	assert.Equal(t, []string{"python"}, report.CurrentSkills)
}

func TestAnalyzeEnrichmentMergesAISkills(t *testing.T) {
	t.Parallel()
	ai := &stubAI{response: `["graphql", "terraform", "` + strings.Repeat("x", 60) + `"]`}
	s := newTestService(ai, nil)

	kws := s.jobKeywords(context.Background(), jobText)
	assert.Contains(t, kws, "python")
	assert.Contains(t, kws, "graphql")
	// duplicate of an extracted keyword is not doubled
	assert.Equal(t, 1, countOf(kws, "terraform"))
	// over-long junk is dropped
	for _, kw := range kws {
		assert.Less(t, len(kw), 50)
	}
}

func countOf(s []string, v string) int {
	n := 0
	for _, x := range s {
		if x == v {
			n++
		}
	}
	return n
}

func TestAnalyzeSavesHistory(t *testing.T) {
	t.Parallel()
	repo := &recordingRepo{}
	s := newTestService(nil, repo)
	a := s.Analyze(context.Background(), testResume, jobText)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "id-1", a.ID)

	got, err := s.History(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestAnalyzeHistoryWithoutRepo(t *testing.T) {
	t.Parallel()
	s := newTestService(nil, nil)
	got, err := s.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
