package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sarensabesk/HireAI/internal/config"
	"github.com/sarensabesk/HireAI/internal/domain"
	"github.com/sarensabesk/HireAI/internal/match"
	"github.com/sarensabesk/HireAI/internal/tfidf"
	"github.com/sarensabesk/HireAI/pkg/textx"
)

const (
	maxMatchingShown = 20
	maxMissingShown  = 15
	maxDensityShown  = 10
	maxResumeShown   = 30
	summarySentences = 3
	tfidfMaxFeatures = 500
)

// AnalyzeService scores a resume against a job description: validation
// gates, hybrid keyword extraction, exact plus fuzzy matching, TF-IDF
// similarity, density bonus, and generator-backed recommendations.
type AnalyzeService struct {
	cfg     config.Config
	engine  KeywordEngine
	sents   SentenceSplitter
	vec     *tfidf.Vectorizer
	matcher match.Matcher
	ai      domain.AIClient
	cleaner ResponseCleaner
	repo    domain.AnalysisRepository
}

// NewAnalyzeService wires the scoring pipeline. ai may be nil, in which case
// all generator-backed stages degrade to their deterministic fallbacks.
func NewAnalyzeService(cfg config.Config, engine KeywordEngine, sents SentenceSplitter, ai domain.AIClient, cleaner ResponseCleaner, repo domain.AnalysisRepository) *AnalyzeService {
	return &AnalyzeService{
		cfg:     cfg,
		engine:  engine,
		sents:   sents,
		vec:     tfidf.NewVectorizer(engine.StopWords(), tfidfMaxFeatures),
		matcher: match.Matcher{Threshold: cfg.FuzzyThreshold},
		ai:      ai,
		cleaner: cleaner,
		repo:    repo,
	}
}

// Analyze runs the full scoring pipeline. Validation failures return an
// Analysis with Score 0 and a populated Error rather than a Go error: a
// too-short job description is a user problem, not a system one.
func (s *AnalyzeService) Analyze(ctx domain.Context, resume domain.Resume, jobText string) domain.Analysis {
	start := time.Now()

	wordCount := textx.WordCount(jobText)
	if wordCount < s.cfg.MinJobWords {
		a := domain.Analysis{
			Error:     fmt.Sprintf("Job description too short (%d words). Please provide at least 50 words for accurate analysis.", wordCount),
			Domain:    resume.Domain,
			CreatedAt: time.Now().UTC(),
		}
		return a
	}

	jobKeywords := s.jobKeywords(ctx, jobText)
	resumeSkills := s.resumeSkills(ctx, resume)

	if len(jobKeywords) == 0 {
		a := domain.Analysis{
			Error:     "Could not extract meaningful keywords from job description. Please provide more detailed requirements.",
			Domain:    resume.Domain,
			CreatedAt: time.Now().UTC(),
			Keywords:  domain.KeywordAnalysis{TotalResumeSkills: len(resumeSkills)},
		}
		return a
	}

	res := s.matcher.Match(resumeSkills, jobKeywords, s.engine.Normalize)

	skillRatio := float64(len(res.Matched)) / math.Max(1, float64(len(jobKeywords)))
	skillScore := skillRatio * 100

	// Semantic similarity fails soft: a degenerate vocabulary zeroes the
	// signal instead of failing the request.
	semanticScore := 0.0
	if sim, err := s.vec.Similarity(resume.Text, jobText); err == nil {
		semanticScore = sim * 100
	}

	density := keywordDensity(resume.Text, res.Matched)
	var densitySum int
	for _, d := range density {
		densitySum += d.Count
	}
	avgDensity := float64(densitySum) / math.Max(1, float64(len(density)))
	densityBonus := math.Min(s.cfg.DensityBonusCap, avgDensity*2)

	final := skillScore*s.cfg.SkillMatchWeight + semanticScore*s.cfg.SemanticWeight + densityBonus
	final = math.Min(100, math.Max(0, final))

	a := domain.Analysis{
		Score: round2(final),
		Breakdown: domain.ScoreBreakdown{
			SkillMatch:   round2(skillScore),
			Semantic:     round2(semanticScore),
			DensityBonus: round2(densityBonus),
		},
		Summary:   s.summarize(resume.Text),
		ATSStatus: atsStatus(final),
		Keywords: domain.KeywordAnalysis{
			Matching:          head(res.Matched, maxMatchingShown),
			Missing:           head(res.Missing, maxMissingShown),
			Density:           topDensity(density, maxDensityShown),
			TotalJobKeywords:  len(jobKeywords),
			TotalResumeSkills: len(resumeSkills),
			TotalMatched:      len(res.Matched),
			MatchPercentage:   round1(skillRatio * 100),
			AllJobKeywords:    jobKeywords,
			AllResumeSkills:   head(resumeSkills, maxResumeShown),
		},
		Domain:    resume.Domain,
		CreatedAt: time.Now().UTC(),
	}
	a.Recommendations = s.recommendations(ctx, resume, jobText, a.Score, a.Keywords.Missing)
	a.SkillGaps = s.skillGaps(ctx, resume, jobText)

	if s.repo != nil {
		id, err := s.repo.Save(ctx, a)
		if err != nil {
			slog.Warn("analysis history save failed", slog.Any("error", err))
		} else {
			a.ID = id
		}
	}

	slog.Info("analysis completed",
		slog.Float64("score", a.Score),
		slog.Int("job_keywords", len(jobKeywords)),
		slog.Int("resume_skills", len(resumeSkills)),
		slog.Int("matched", len(res.Matched)),
		slog.Duration("elapsed", time.Since(start)))
	return a
}

// History returns recent analyses, newest first.
func (s *AnalyzeService) History(ctx domain.Context) ([]domain.Analysis, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListRecent(ctx, s.cfg.HistoryLimit)
}

// keywordDensity counts literal case-insensitive occurrences of each matched
// keyword in the resume, in match order.
func keywordDensity(resumeText string, matched []string) []domain.KeywordDensity {
	lower := strings.ToLower(resumeText)
	out := make([]domain.KeywordDensity, 0, len(matched))
	for _, kw := range matched {
		out = append(out, domain.KeywordDensity{
			Keyword: kw,
			Count:   strings.Count(lower, strings.ToLower(kw)),
		})
	}
	return out
}

// topDensity returns the n highest-count entries; ties keep match order.
func topDensity(density []domain.KeywordDensity, n int) []domain.KeywordDensity {
	sorted := make([]domain.KeywordDensity, len(density))
	copy(sorted, density)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	return head(sorted, n)
}

func (s *AnalyzeService) summarize(text string) string {
	sentences := s.sents.Sentences(text)
	if len(sentences) > summarySentences {
		sentences = sentences[:summarySentences]
	}
	return strings.Join(sentences, " ")
}

// atsStatus buckets a final score for display.
func atsStatus(score float64) domain.ATSStatus {
	switch {
	case score >= 85:
		return domain.ATSStatus{Level: "high", Label: "Excellent Match", Color: "green"}
	case score >= 70:
		return domain.ATSStatus{Level: "medium", Label: "Strong Match", Color: "yellow"}
	case score >= 50:
		return domain.ATSStatus{Level: "medium", Label: "Good Match", Color: "orange"}
	default:
		return domain.ATSStatus{Level: "low", Label: "Needs Improvement", Color: "red"}
	}
}

var numberedLineRe = regexp.MustCompile(`^\d\.`)

var fallbackRecommendations = []string{
	"Keywords: Add missing skills to resume",
	"Quantify: Include metrics and numbers",
	"Action Verbs: Use stronger action verbs",
	"Format: Improve resume structure",
}

func (s *AnalyzeService) recommendations(ctx domain.Context, resume domain.Resume, jobText string, score float64, missing []string) []string {
	if s.ai == nil {
		return fallbackRecommendations
	}
	resp, err := s.ai.Generate(ctx, recommendationsPrompt(resume.Text, jobText, resume.Domain, score, missing))
	if err != nil {
		slog.Warn("recommendations generation failed", slog.Any("error", err))
		return fallbackRecommendations
	}
	var out []string
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !numberedLineRe.MatchString(line) {
			continue
		}
		out = append(out, line)
		if len(out) == 4 {
			break
		}
	}
	if len(out) == 0 {
		return fallbackRecommendations
	}
	return out
}

func (s *AnalyzeService) skillGaps(ctx domain.Context, resume domain.Resume, jobText string) domain.SkillGapReport {
	empty := domain.SkillGapReport{CurrentSkills: []string{}, Gaps: []domain.SkillGap{}}
	if s.ai == nil {
		return empty
	}
	resp, err := s.ai.Generate(ctx, skillGapPrompt(resume.Text, jobText, resume.Domain))
	if err != nil {
		slog.Warn("skill gap generation failed", slog.Any("error", err))
		return empty
	}
	cleaned := s.cleaner.CleanJSON(resp)
	if cleaned == "" {
		return empty
	}
	var report domain.SkillGapReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return empty
	}
	if report.CurrentSkills == nil {
		report.CurrentSkills = []string{}
	}
	if report.Gaps == nil {
		report.Gaps = []domain.SkillGap{}
	}
	return report
}

func head[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round1(x float64) float64 { return math.Round(x*10) / 10 }
