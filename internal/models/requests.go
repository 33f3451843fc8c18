package models

type ScoreRequest struct {
	Resume any `json:"resume"`
	Job    any `json:"job"`
}

type SummaryRequest struct {
	Resume any `json:"resume"`
}

type QuestionsRequest struct {
	Role   string   `json:"role"`
	Level  string   `json:"level"`
	Skills []string `json:"skills"`
}

type EmailRequest struct {
	Purpose string `json:"purpose"`
	Tone    string `json:"tone" validate:"omitempty,oneof=formal casual friendly"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Extra   string `json:"extra,omitempty"`
}

type SkillGapRequest struct {
	CandidateSkills []string `json:"candidateSkills"`
	JobRequirements []string `json:"jobRequirements"`
}

type RankRequest struct {
	Candidates     []Candidate `json:"candidates" validate:"dive"`
	JobSkills      []string    `json:"jobSkills"`
	PreferredYears float64     `json:"preferredYears"`
}

// DuplicateCheckRequest leaves Threshold nil to use the configured default.
type DuplicateCheckRequest struct {
	ResumeText         string            `json:"resumeText"`
	ExistingEmbeddings []EmbeddingVector `json:"existingEmbeddings"`
	Threshold          *float64          `json:"threshold" validate:"omitempty,gte=0,lte=1"`
}

type RankResponse struct {
	Candidates []RankedCandidate `json:"candidates"`
}
