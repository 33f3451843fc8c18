package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"alfredoptarigan/hiring-assistant/internal/models"
)

// RankingWeights are the coefficients of the composite score.
type RankingWeights struct {
	AIScore    float64
	Experience float64
	Skills     float64
}

// DefaultRankingWeights sum to 1.
var DefaultRankingWeights = RankingWeights{AIScore: 0.5, Experience: 0.2, Skills: 0.3}

type Ranker struct {
	weights RankingWeights
}

func NewRanker(weights RankingWeights) *Ranker {
	return &Ranker{weights: weights}
}

// CalculateSkillOverlap returns the fraction of jobSkills found in
// resumeSkills, compared case-insensitively after trimming. Job skills are
// not deduplicated. An empty jobSkills yields 0.
func CalculateSkillOverlap(resumeSkills, jobSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		have[normalizeSkill(skill)] = struct{}{}
	}

	matches := 0
	for _, skill := range jobSkills {
		if _, ok := have[normalizeSkill(skill)]; ok {
			matches++
		}
	}

	return float64(matches) / float64(len(jobSkills))
}

// CalculateExperienceScore gives full credit when no preference is set and
// caps the ratio at 1 otherwise.
func CalculateExperienceScore(yearsExperience, preferredYears float64) float64 {
	if preferredYears <= 0 {
		return 100
	}

	ratio := yearsExperience / preferredYears
	if ratio > 1 {
		ratio = 1
	}
	return roundTo(ratio*100, 0)
}

// RankCandidates scores every candidate and returns them sorted by
// descending final score. Equal scores keep their input order. Inputs are
// not modified.
func (r *Ranker) RankCandidates(candidates []models.Candidate, jobSkills []string, preferredYears float64) []models.RankedCandidate {
	ranked := make([]models.RankedCandidate, 0, len(candidates))

	for _, candidate := range candidates {
		experience := CalculateExperienceScore(candidate.YearsExperience, preferredYears)
		overlap := CalculateSkillOverlap(candidate.ResumeSkills, jobSkills) * 100

		final := candidate.AIScore*r.weights.AIScore +
			experience*r.weights.Experience +
			overlap*r.weights.Skills

		c := candidate
		c.ResumeSkills = append([]string(nil), candidate.ResumeSkills...)

		ranked = append(ranked, models.RankedCandidate{
			Candidate:   c,
			FinalScore:  roundTo(ClampScore(final, 0, 100), 2),
			Explanation: r.explain(candidate.AIScore, experience, roundTo(overlap, 0)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	return ranked
}

func (r *Ranker) explain(aiScore, experience, overlap float64) string {
	return fmt.Sprintf("AI score (%s) * %s + experience (%s) * %s + skill overlap (%s) * %s",
		formatNumber(aiScore), formatNumber(r.weights.AIScore),
		formatNumber(experience), formatNumber(r.weights.Experience),
		formatNumber(overlap), formatNumber(r.weights.Skills),
	)
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
