package usecase

import (
	"fmt"
	"strings"
)

// truncateRunes bounds prompt context slices so requests stay inside the
// generator's context window.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func jobEnrichPrompt(existing []string, jobText string) string {
	return fmt.Sprintf(`From this job description, identify ONLY 5-8 critical requirements that are NOT already in this list: %s

Job Description: %s

Focus on:
- Specific technical skills or tools
- Required certifications
- Years of experience requirements
- Education requirements
- Domain-specific knowledge

Return ONLY a JSON array of strings: ["skill1", "skill2", ...]
Keep each skill concise (under 6 words).`,
		strings.Join(existing, ", "), truncateRunes(jobText, 1200))
}

func resumeEnrichPrompt(existing []string, resumeText, domain string) string {
	if len(existing) > 20 {
		existing = existing[:20]
	}
	return fmt.Sprintf(`From this %s resume, identify 8-12 additional important skills/qualifications NOT in: %s

Resume: %s

Return comma-separated skills only. Focus on:
- Technical skills and tools used
- Certifications mentioned
- Years of experience
- Programming languages

Keep each skill under 6 words.`,
		domain, strings.Join(existing, ", "), truncateRunes(resumeText, 1500))
}

func recommendationsPrompt(resumeText, jobText, domain string, score float64, missing []string) string {
	if len(missing) > 8 {
		missing = missing[:8]
	}
	return fmt.Sprintf(`As a %s resume expert, provide 4 actionable recommendations.

Score: %.1f%%
Missing Keywords: %s
Resume: %s
Job: %s

Format:
1. [Category]: [Specific advice under 120 chars]
2. [Category]: [Specific advice under 120 chars]
3. [Category]: [Specific advice under 120 chars]
4. [Category]: [Specific advice under 120 chars]`,
		domain, score, strings.Join(missing, ", "),
		truncateRunes(resumeText, 1500), truncateRunes(jobText, 1000))
}

func skillGapPrompt(resumeText, jobText, domain string) string {
	return fmt.Sprintf(`Analyze skill gaps for %s.
Resume: %s
Job: %s

Return as valid JSON:
{
    "current_skills": ["skill1", "skill2", "skill3"],
    "skill_gaps": [
        {"skill": "name", "importance": "high", "resources": ["resource1", "resource2"]},
        {"skill": "name", "importance": "medium", "resources": ["resource1"]}
    ]
}`,
		domain, truncateRunes(resumeText, 1000), truncateRunes(jobText, 800))
}

func coverLetterPrompt(resumeText, jobText, domain, company string) string {
	return fmt.Sprintf(`Write a professional, compelling cover letter (250-300 words) for this candidate applying to %s in the %s field.

Resume Summary: %s
Job Requirements: %s

The cover letter should:
1. Open with enthusiasm about the specific role
2. Highlight 2-3 key relevant qualifications from the resume
3. Demonstrate understanding of the company/role needs
4. Close with a strong call to action

Use a professional but warm tone. Do not use placeholder brackets.`,
		company, domain, truncateRunes(resumeText, 1000), truncateRunes(jobText, 800))
}

func interviewPrepPrompt(resumeText, jobText, domain string) string {
	return fmt.Sprintf(`Based on this resume and job requirements in %s, generate:

Resume: %s
Job Requirements: %s

Return as valid JSON:
{
    "technical_questions": ["question1", "question2", "question3"],
    "behavioral_questions": ["question1", "question2"],
    "key_talking_points": ["point1", "point2", "point3"],
    "questions_to_ask": ["question1", "question2"]
}`,
		domain, truncateRunes(resumeText, 1000), truncateRunes(jobText, 600))
}

func roadmapPrompt(resumeText, currentDomain, targetRole, currentExperience string) string {
	expLine := ""
	if currentExperience != "" {
		expLine = "Current experience: " + currentExperience + "\n"
	}
	return fmt.Sprintf(`Generate a detailed career transition roadmap from %s to %s.
%s
Resume context: %s

Return ONLY valid JSON with this EXACT structure (no markdown, no extra text):
{
  "current_position": "Their current role based on resume",
  "target_position": "%s",
  "total_duration": "X-Y months/years estimate",
  "difficulty_level": "Beginner/Intermediate/Advanced",
  "phases": [
    {
      "phase": 1,
      "title": "Foundation Building",
      "duration": "1-2 months",
      "description": "Brief description of this phase",
      "skills": ["Skill 1", "Skill 2", "Skill 3"],
      "resources": ["Resource 1", "Resource 2"],
      "milestones": ["Milestone 1", "Milestone 2"]
    }
  ],
  "certifications": ["Cert 1", "Cert 2", "Cert 3"],
  "networking_tips": ["Tip 1", "Tip 2", "Tip 3"],
  "portfolio_projects": ["Project 1", "Project 2", "Project 3"]
}

Rules:
- Include 4-6 phases
- Each phase must have a valid duration (e.g., "2-4 months")
- Be specific and actionable
- Return ONLY the JSON object, nothing else`,
		currentDomain, targetRole, expLine, truncateRunes(resumeText, 1000), targetRole)
}

func coldEmailPrompt(emailType, recipientDisplay, company, resumeText, contextStr string) string {
	const jsonShape = `Return as valid JSON:
{
    "subject_line": "Primary subject line",
    "email_body": "Full email with greeting, body, closing, signature",
    "alternative_subjects": ["Alt 1", "Alt 2", "Alt 3"]
}`

	switch emailType {
	case "networking":
		return fmt.Sprintf(`Write a warm networking cold email (80-100 words).

Recipient: %s
Company: %s
Background: %s
%s

Structure:
- Subject line focused on learning/advice (NOT job request)
- Personalized opening showing genuine interest in their work
- Brief relevant background mention (1-2 sentences max)
- Specific ask: 15-minute coffee chat or informational interview
- Make it easy to say yes
- Gracious closing

%s

Tone: Humble, curious, respectful. Show research about them/company.`,
			recipientDisplay, company, truncateRunes(resumeText, 600), contextStr, jsonShape)
	case "referral":
		return fmt.Sprintf(`Write a polite referral request email (90-110 words).

Recipient: %s
Company: %s
Background: %s
%s

Structure:
- Subject mentioning mutual connection or shared background
- Opening: How you found them (LinkedIn, mutual connection, etc.)
- Brief relevant background (2-3 sentences)
- Specific request: referral or introduction to hiring team
- Make it LOW effort for them (offer to send resume, etc.)
- Appreciative closing

%s

Tone: Polite, appreciative, clear. Make the ask very specific.`,
			recipientDisplay, company, truncateRunes(resumeText, 700), contextStr, jsonShape)
	case "followup":
		return fmt.Sprintf(`Write a professional follow-up email (60-80 words).

Recipient: %s
Company: %s
%s
Background: %s

Structure:
- Subject referencing previous interaction
- Brief reminder of previous contact (when and what)
- Restate interest in role/company
- Provide update or new relevant info (if any)
- Polite ask for status update or next steps
- Professional closing

%s

Tone: Polite, patient, professionally persistent. Not desperate.`,
			recipientDisplay, company, contextStr, truncateRunes(resumeText, 500), jsonShape)
	default: // direct
		return fmt.Sprintf(`Write a concise cold email (100-120 words) for a direct job application.

Recipient: %s
Company: %s
Resume Summary: %s
%s

Structure:
- Compelling subject line that mentions role or key skill
- Brief intro (1-2 sentences) - why this company/role
- Highlight 2-3 most relevant qualifications with specifics
- Clear call-to-action (request interview/discussion)
- Professional closing with contact info

%s

Tone: Professional, confident, specific. Avoid generic phrases.`,
			recipientDisplay, company, truncateRunes(resumeText, 800), contextStr, jsonShape)
	}
}
