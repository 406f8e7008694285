package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sarensabesk/HireAI/internal/domain"
)

// ColdEmailRequest carries the knobs for cold-email generation. Type is one
// of "direct", "networking", "referral", "followup".
type ColdEmailRequest struct {
	Type              string
	CompanyName       string
	RecipientName     string
	RecipientTitle    string
	JobRequirement    string
	AdditionalContext string
}

// ValidEmailTypes lists the accepted cold-email types.
var ValidEmailTypes = []string{"direct", "networking", "referral", "followup"}

// ArtifactService produces generator-backed career artifacts. Every
// operation degrades to deterministic fallback content when the generator is
// unavailable or returns malformed output, except Roadmap, whose structured
// plan has no useful static fallback.
type ArtifactService struct {
	ai      domain.AIClient
	cleaner ResponseCleaner
}

func NewArtifactService(ai domain.AIClient, cleaner ResponseCleaner) *ArtifactService {
	return &ArtifactService{ai: ai, cleaner: cleaner}
}

// CoverLetter writes a cover letter for the active resume against a job
// description.
func (s *ArtifactService) CoverLetter(ctx domain.Context, resume domain.Resume, jobText, company string) string {
	if company == "" {
		company = "the company"
	}
	if s.ai == nil {
		return fallbackCoverLetter(company)
	}
	out, err := s.ai.Generate(ctx, coverLetterPrompt(resume.Text, jobText, resume.Domain, company))
	if err != nil || strings.TrimSpace(out) == "" {
		slog.Warn("cover letter generation failed", slog.Any("error", err))
		return fallbackCoverLetter(company)
	}
	return strings.TrimSpace(out)
}

// ColdEmail generates a structured cold email. Partial generator output is
// repaired: a missing subject or subject alternatives are filled from the
// per-type fallbacks, while a missing body fails the whole generation.
func (s *ArtifactService) ColdEmail(ctx domain.Context, resume domain.Resume, req ColdEmailRequest) domain.ColdEmail {
	if s.ai == nil {
		return fallbackColdEmail(req)
	}

	recipientDisplay := req.RecipientName
	if recipientDisplay == "" {
		recipientDisplay = "Hiring Manager"
	}
	if req.RecipientTitle != "" {
		recipientDisplay += " (" + req.RecipientTitle + ")"
	}
	var contextParts []string
	if req.JobRequirement != "" {
		contextParts = append(contextParts, "Job Context: "+truncateRunes(req.JobRequirement, 400))
	}
	if req.AdditionalContext != "" {
		contextParts = append(contextParts, "Additional Info: "+truncateRunes(req.AdditionalContext, 200))
	}
	contextStr := "General outreach"
	if len(contextParts) > 0 {
		contextStr = strings.Join(contextParts, "\n")
	}

	resp, err := s.ai.Generate(ctx, coldEmailPrompt(req.Type, recipientDisplay, req.CompanyName, resume.Text, contextStr))
	if err != nil {
		slog.Warn("cold email generation failed", slog.Any("error", err))
		return fallbackColdEmail(req)
	}
	cleaned := s.cleaner.CleanJSON(resp)
	var email domain.ColdEmail
	if cleaned == "" || json.Unmarshal([]byte(cleaned), &email) != nil || email.EmailBody == "" {
		slog.Warn("cold email generation returned malformed JSON")
		return fallbackColdEmail(req)
	}
	if email.SubjectLine == "" {
		email.SubjectLine = fmt.Sprintf("Regarding Opportunity at %s", req.CompanyName)
	}
	if len(email.AlternativeSubjects) == 0 {
		email.AlternativeSubjects = fallbackSubjects(req.CompanyName, req.Type)
	}
	return email
}

// InterviewPrep generates likely interview questions and talking points.
func (s *ArtifactService) InterviewPrep(ctx domain.Context, resume domain.Resume, jobText string) domain.InterviewPrep {
	fallback := domain.InterviewPrep{
		TechnicalQuestions:  []string{"Unable to generate"},
		BehavioralQuestions: []string{"Unable to generate"},
		KeyTalkingPoints:    []string{"Unable to generate"},
		QuestionsToAsk:      []string{"Unable to generate"},
	}
	if s.ai == nil {
		return fallback
	}
	resp, err := s.ai.Generate(ctx, interviewPrepPrompt(resume.Text, jobText, resume.Domain))
	if err != nil {
		slog.Warn("interview prep generation failed", slog.Any("error", err))
		return fallback
	}
	cleaned := s.cleaner.CleanJSON(resp)
	var prep domain.InterviewPrep
	if cleaned == "" || json.Unmarshal([]byte(cleaned), &prep) != nil {
		return fallback
	}
	return prep
}

// Roadmap generates a structured career-transition plan. Unlike the other
// artifacts this returns an error on malformed output, since an invented
// multi-month plan would be worse than none.
func (s *ArtifactService) Roadmap(ctx domain.Context, resume domain.Resume, targetRole, currentExperience string) (domain.Roadmap, error) {
	if targetRole == "" {
		return domain.Roadmap{}, fmt.Errorf("%w: target role is required", domain.ErrInvalidArgument)
	}
	if s.ai == nil {
		return domain.Roadmap{}, fmt.Errorf("%w: generator not configured", domain.ErrUpstreamTimeout)
	}
	resp, err := s.ai.Generate(ctx, roadmapPrompt(resume.Text, resume.Domain, targetRole, currentExperience))
	if err != nil {
		return domain.Roadmap{}, fmt.Errorf("op=roadmap.generate: %w", err)
	}
	cleaned := s.cleaner.CleanJSON(resp)
	if cleaned == "" {
		return domain.Roadmap{}, fmt.Errorf("%w: roadmap response is not valid JSON", domain.ErrSchemaInvalid)
	}
	var roadmap domain.Roadmap
	if err := json.Unmarshal([]byte(cleaned), &roadmap); err != nil {
		return domain.Roadmap{}, fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}
	return roadmap, nil
}

func fallbackCoverLetter(company string) string {
	return fmt.Sprintf(`Dear Hiring Manager,

I am excited to apply for this role at %s. My background aligns closely with the position's requirements, and I am confident I can contribute from day one.

Across my career I have delivered measurable results, collaborated effectively across teams, and continuously developed the skills this role calls for. I would welcome the chance to discuss how my experience maps to your needs.

Thank you for your consideration. I look forward to speaking with you.

Sincerely,
Your Candidate`, company)
}

func fallbackColdEmail(req ColdEmailRequest) domain.ColdEmail {
	return domain.ColdEmail{
		SubjectLine:         fmt.Sprintf("Regarding %s Opportunity", req.CompanyName),
		EmailBody:           "An error occurred while generating your email. Please try again.",
		AlternativeSubjects: fallbackSubjects(req.CompanyName, req.Type),
	}
}

// fallbackSubjects returns canned subject lines per email type.
func fallbackSubjects(company, emailType string) []string {
	switch emailType {
	case "networking":
		return []string{
			fmt.Sprintf("Learning from %s's Success", company),
			fmt.Sprintf("Coffee Chat with %s Team?", company),
			fmt.Sprintf("Seeking Advice from %s Professional", company),
		}
	case "referral":
		return []string{
			fmt.Sprintf("Introduction Request - %s", company),
			fmt.Sprintf("Referred Connection at %s", company),
			fmt.Sprintf("Mutual Interest in %s", company),
		}
	case "followup":
		return []string{
			fmt.Sprintf("Following Up - %s Application", company),
			fmt.Sprintf("Checking In: %s Opportunity", company),
			fmt.Sprintf("Continued Interest in %s", company),
		}
	case "direct":
		return []string{
			fmt.Sprintf("Application for Role at %s", company),
			fmt.Sprintf("Experienced Professional Interested in %s", company),
			fmt.Sprintf("Adding Value to %s's Team", company),
		}
	default:
		return []string{fmt.Sprintf("Regarding %s", company)}
	}
}
