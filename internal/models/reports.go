package models

// Recommendation values the scoring prompt asks the model for.
const (
	RecommendationStrongFit = "Strong Fit"
	RecommendationModerate  = "Moderate"
	RecommendationWeak      = "Weak"
)

// ResumeScoreReport is the ATS-style fit assessment. Score is nil when the
// provider was unavailable.
type ResumeScoreReport struct {
	Score          *float64 `json:"score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
	Reason         string   `json:"reason"`
}

// Normalize replaces missing lists with empty ones.
func (r *ResumeScoreReport) Normalize() {
	r.MatchingSkills = orEmpty(r.MatchingSkills)
	r.MissingSkills = orEmpty(r.MissingSkills)
	r.Strengths = orEmpty(r.Strengths)
	r.Weaknesses = orEmpty(r.Weaknesses)
}

type ResumeSummary struct {
	SummaryBullets []string `json:"summary_bullets"`
}

func (s *ResumeSummary) Normalize() {
	s.SummaryBullets = orEmpty(s.SummaryBullets)
}

type InterviewQuestionSet struct {
	Technical  []string `json:"technical"`
	Behavioral []string `json:"behavioral"`
	Scenario   []string `json:"scenario"`
}

func (q *InterviewQuestionSet) Normalize() {
	q.Technical = orEmpty(q.Technical)
	q.Behavioral = orEmpty(q.Behavioral)
	q.Scenario = orEmpty(q.Scenario)
}

type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (e *EmailDraft) Normalize() {}

type SkillGapReport struct {
	MissingSkills         []string `json:"missing_skills"`
	RecommendedLearning   []string `json:"recommended_learning"`
	EstimatedWeeksToLearn float64  `json:"estimated_weeks_to_learn"`
}

func (s *SkillGapReport) Normalize() {
	s.MissingSkills = orEmpty(s.MissingSkills)
	s.RecommendedLearning = orEmpty(s.RecommendedLearning)
}

// ResumeAnalysis is the combined result of extracting and analyzing an upload.
// Score is nil when no job description was supplied.
type ResumeAnalysis struct {
	FileName      string             `json:"fileName"`
	ExtractedText string             `json:"extractedText"`
	Summary       ResumeSummary      `json:"summary"`
	Score         *ResumeScoreReport `json:"score"`
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
