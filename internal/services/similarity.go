package services

import (
	"math"

	"alfredoptarigan/hiring-assistant/internal/models"
)

// DefaultDuplicateThreshold is used when no threshold is configured.
const DefaultDuplicateThreshold = 0.92

// CosineSimilarity returns dot(a,b)/(|a||b|). Empty, mismatched or zero
// vectors are treated as not similar and yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	denominator := math.Sqrt(magA) * math.Sqrt(magB)
	if denominator == 0 {
		return 0
	}

	return dot / denominator
}

// DetectDuplicateCandidate compares embedding against every existing vector.
// The best similarity starts at 0, the comparison is strictly greater than
// threshold and is made before rounding.
func DetectDuplicateCandidate(embedding []float64, existing []models.EmbeddingVector, threshold float64) models.DuplicateCheckResult {
	best := 0.0
	for _, other := range existing {
		best = math.Max(best, CosineSimilarity(embedding, other))
	}

	return models.DuplicateCheckResult{
		IsDuplicate: best > threshold,
		Similarity:  roundTo(best, 4),
		Threshold:   threshold,
	}
}
