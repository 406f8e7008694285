package usecase

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/sarensabesk/HireAI/internal/domain"
)

// maxEnrichedSkillLen drops generator output that is clearly not a skill
// name (whole sentences, apologies, markdown).
const maxEnrichedSkillLen = 50

// jobKeywords extracts keyword candidates from the job description and, when
// a generator is available, merges in skills it identifies beyond the rule
// battery. Generator failures fall back to the extracted set alone.
func (s *AnalyzeService) jobKeywords(ctx domain.Context, jobText string) []string {
	base := s.engine.Extract(jobText, s.cfg.JobKeywordCap-5)
	if s.ai == nil {
		return base
	}

	resp, err := s.ai.Generate(ctx, jobEnrichPrompt(base, jobText))
	if err != nil {
		slog.Warn("job keyword enrichment failed", slog.Any("error", err))
		return base
	}
	cleaned := s.cleaner.CleanJSON(resp)
	var aiSkills []string
	if cleaned == "" || json.Unmarshal([]byte(cleaned), &aiSkills) != nil {
		slog.Warn("job keyword enrichment returned malformed JSON")
		return base
	}
	return mergeSkills(base, aiSkills, s.cfg.JobKeywordCap)
}

// resumeSkills mirrors jobKeywords for the resume side. The generator output
// here is a comma-separated list rather than JSON.
func (s *AnalyzeService) resumeSkills(ctx domain.Context, resume domain.Resume) []string {
	base := s.engine.Extract(resume.Text, s.cfg.ResumeKeywordCap-10)
	if s.ai == nil {
		return base
	}

	resp, err := s.ai.Generate(ctx, resumeEnrichPrompt(base, resume.Text, resume.Domain))
	if err != nil {
		slog.Warn("resume skill enrichment failed", slog.Any("error", err))
		return base
	}
	var aiSkills []string
	for _, part := range strings.Split(strings.ReplaceAll(resp, "\n", ","), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			aiSkills = append(aiSkills, part)
		}
	}
	return mergeSkills(base, aiSkills, s.cfg.ResumeKeywordCap)
}

// mergeSkills appends enriched skills after the extracted ones, deduping on
// the exact string, bounded at max. Only enriched entries are subject to the
// length filter; extracted candidates were already cleaned.
func mergeSkills(base, enriched []string, max int) []string {
	out := make([]string, 0, max)
	seen := map[string]struct{}{}
	add := func(skill string) {
		if _, dup := seen[skill]; dup {
			return
		}
		seen[skill] = struct{}{}
		if len(out) < max {
			out = append(out, skill)
		}
	}
	for _, sk := range base {
		add(sk)
	}
	for _, sk := range enriched {
		sk = strings.TrimSpace(sk)
		if sk == "" || len(sk) >= maxEnrichedSkillLen {
			continue
		}
		add(sk)
	}
	return out
}
