package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/hiring-assistant/internal/models"
)

// PromptBuilder renders the fixed-schema prompts for each capability.
// Every caller value is sanitized before it is embedded.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeScoringPrompt creates the ATS comparison prompt
func (pb *PromptBuilder) BuildResumeScoringPrompt(resume, job any) string {
	return fmt.Sprintf(`You are an ATS evaluator.

Compare candidate resume and job description.

Return JSON only:
{
  "score": number,
  "matching_skills": string[],
  "missing_skills": string[],
  "strengths": string[],
  "weaknesses": string[],
  "recommendation": "Strong Fit" | "Moderate" | "Weak",
  "reason": string
}

Resume:
%s

Job:
%s`, Sanitize(stringify(resume)), Sanitize(stringify(job)))
}

// BuildInterviewQuestionsPrompt creates the question generation prompt
func (pb *PromptBuilder) BuildInterviewQuestionsPrompt(req models.QuestionsRequest) string {
	return fmt.Sprintf(`Generate 7 interview questions.

Role: %s
Difficulty: %s
Skills: %s

Return JSON:
{
  "technical": string[],
  "behavioral": string[],
  "scenario": string[]
}`, Sanitize(req.Role), Sanitize(req.Level), SanitizeAll(req.Skills))
}

func (pb *PromptBuilder) BuildSummaryPrompt(resume any) string {
	return fmt.Sprintf(`Summarize candidate resume for recruiter.

Rules:
- Max 5 bullet points
- Highlight strongest skills first
- Include experience years
- Include best achievement
- Avoid fluff

Resume:
%s

Return JSON only:
{
  "summary_bullets": string[]
}`, Sanitize(stringify(resume)))
}

func (pb *PromptBuilder) BuildEmailDraftPrompt(req models.EmailRequest) string {
	return fmt.Sprintf(`Write professional email.

Purpose: %s
Tone: %s
Candidate Name: %s
Role: %s
Details: %s

Return JSON only:
{
  "subject": string,
  "body": string
}`, Sanitize(req.Purpose), Sanitize(req.Tone), Sanitize(req.Name), Sanitize(req.Role), Sanitize(req.Extra))
}

func (pb *PromptBuilder) BuildSkillGapPrompt(req models.SkillGapRequest) string {
	return fmt.Sprintf(`Compare candidate skills with job requirements.

Candidate skills: %s
Job requirements: %s

Return JSON only:
{
  "missing_skills": string[],
  "recommended_learning": string[],
  "estimated_weeks_to_learn": number
}`, SanitizeAll(req.CandidateSkills), SanitizeAll(req.JobRequirements))
}

// stringify renders v as compact JSON without HTML escaping.
func stringify(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
