package models

// Candidate is one applicant as supplied to the ranking endpoint.
type Candidate struct {
	CandidateID     string   `json:"candidateId" validate:"required"`
	AIScore         float64  `json:"aiScore" validate:"gte=0,lte=100"`
	YearsExperience float64  `json:"yearsExperience" validate:"gte=0"`
	ResumeSkills    []string `json:"resumeSkills"`
}

// RankedCandidate is a Candidate augmented with its composite score.
type RankedCandidate struct {
	Candidate
	FinalScore  float64 `json:"finalScore"`
	Explanation string  `json:"explanation"`
}

// EmbeddingVector is one encoded document.
type EmbeddingVector []float64

type DuplicateCheckResult struct {
	IsDuplicate bool    `json:"isDuplicate"`
	Similarity  float64 `json:"similarity"`
	Threshold   float64 `json:"threshold"`
}
