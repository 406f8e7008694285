// Package domain holds the core entities, error taxonomy, and ports of the
// resume matching engine.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrInternal        = errors.New("internal error")
)

// Resume is the single-slot session state: at most one active resume at a
// time, replaced wholesale on upload and cleared on delete.
type Resume struct {
	Filename   string
	Text       string
	Domain     string
	UploadedAt time.Time
}

// ScoreBreakdown records the three scoring signals before blending.
// Invariant: final = clamp(0,100, skillWeight*SkillMatch + semanticWeight*Semantic + DensityBonus).
type ScoreBreakdown struct {
	SkillMatch   float64 `json:"skill_match"`
	Semantic     float64 `json:"semantic_similarity"`
	DensityBonus float64 `json:"keyword_density_bonus"`
}

// KeywordDensity pairs a matched keyword with its literal occurrence count in
// the resume text.
type KeywordDensity struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// KeywordAnalysis is the explainability section of an analysis: which job
// keywords were found, which are missing, and how densely the matches occur.
type KeywordAnalysis struct {
	Matching          []string         `json:"matching_keywords"`
	Missing           []string         `json:"missing_keywords"`
	Density           []KeywordDensity `json:"keyword_density"`
	TotalJobKeywords  int              `json:"total_job_keywords"`
	TotalResumeSkills int              `json:"total_resume_skills"`
	TotalMatched      int              `json:"total_matched"`
	MatchPercentage   float64          `json:"match_percentage"`
	AllJobKeywords    []string         `json:"all_job_keywords,omitempty"`
	AllResumeSkills   []string         `json:"all_resume_skills,omitempty"`
}

// ATSStatus buckets a final score into a coarse label for display.
type ATSStatus struct {
	Level string `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// SkillGap is a single gap item from the generator's gap report.
type SkillGap struct {
	Skill      string   `json:"skill"`
	Importance string   `json:"importance"`
	Resources  []string `json:"resources"`
}

// SkillGapReport is the generator-produced gap analysis; empty on failure.
type SkillGapReport struct {
	CurrentSkills []string   `json:"current_skills"`
	Gaps          []SkillGap `json:"skill_gaps"`
}

// Analysis is the externally visible result of one scoring request. When a
// validation gate fails, Score is 0 and Error carries the human-readable
// message; all other fields are zero-valued.
type Analysis struct {
	ID              string          `json:"id,omitempty"`
	Score           float64         `json:"score"`
	Error           string          `json:"error,omitempty"`
	Breakdown       ScoreBreakdown  `json:"score_breakdown"`
	Summary         string          `json:"summary,omitempty"`
	ATSStatus       ATSStatus       `json:"ats_status"`
	Keywords        KeywordAnalysis `json:"keyword_analysis"`
	Recommendations []string        `json:"recommendations,omitempty"`
	SkillGaps       SkillGapReport  `json:"skill_gaps"`
	Domain          string          `json:"domain,omitempty"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
}

// Failed reports whether the analysis stopped at a validation gate.
func (a Analysis) Failed() bool { return a.Error != "" }

// ColdEmail is the structured output of the cold-email artifact.
type ColdEmail struct {
	SubjectLine         string   `json:"subject_line"`
	EmailBody           string   `json:"email_body"`
	AlternativeSubjects []string `json:"alternative_subjects"`
}

// InterviewPrep is the structured output of the interview-prep artifact.
type InterviewPrep struct {
	TechnicalQuestions  []string `json:"technical_questions"`
	BehavioralQuestions []string `json:"behavioral_questions"`
	KeyTalkingPoints    []string `json:"key_talking_points"`
	QuestionsToAsk      []string `json:"questions_to_ask"`
}

// RoadmapPhase is one phase of a career-transition roadmap.
type RoadmapPhase struct {
	Phase       int      `json:"phase"`
	Title       string   `json:"title"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Resources   []string `json:"resources"`
	Milestones  []string `json:"milestones"`
}

// Roadmap is the structured career-transition plan artifact.
type Roadmap struct {
	CurrentPosition   string         `json:"current_position"`
	TargetPosition    string         `json:"target_position"`
	TotalDuration     string         `json:"total_duration"`
	DifficultyLevel   string         `json:"difficulty_level"`
	Phases            []RoadmapPhase `json:"phases"`
	Certifications    []string       `json:"certifications"`
	NetworkingTips    []string       `json:"networking_tips"`
	PortfolioProjects []string       `json:"portfolio_projects"`
}

// AIClient (port)
//
// Generate runs one prompt against the external text generator and returns the
// raw completion. Callers must treat failures as recoverable: every consumer
// degrades to a deterministic fallback rather than propagating the error.
type AIClient interface {
	Generate(ctx Context, prompt string) (string, error)
}

// AnalysisRepository (port) persists completed analyses for history listing.
type AnalysisRepository interface {
	Save(ctx Context, a Analysis) (string, error)
	ListRecent(ctx Context, limit int) ([]Analysis, error)
}

// TextExtractor (port) turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx Context, filename string, data []byte) (string, error)
}

// Context aliases context.Context so ports read uniformly across the domain.
type Context = context.Context
