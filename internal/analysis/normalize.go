package analysis

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/codesye/studentcode-service/internal/domain"
)

// Defaults used when the upstream response is missing a field or cannot be
// parsed at all.
const (
	defaultScore        = 5
	defaultComplexity   = "N/A"
	defaultAssessment   = "Code analysis complete"
	fallbackAssessment  = "Code analysis completed with basic feedback"
	minQualityScore     = 0
	maxQualityScore     = 10
)

var fallbackTips = []string{
	"Try to write more descriptive variable names",
	"Consider adding comments to explain complex logic",
}

// rawAnalysis mirrors the JSON shape the prompt asks the model to produce.
// Pointers distinguish "absent" from zero values.
type rawAnalysis struct {
	QualityScore               *int                `json:"quality_score"`
	Suggestions                []domain.Suggestion `json:"suggestions"`
	TimeComplexity             *string             `json:"time_complexity"`
	TimeComplexityExplanation  *string             `json:"time_complexity_explanation"`
	SpaceComplexity            *string             `json:"space_complexity"`
	SpaceComplexityExplanation *string             `json:"space_complexity_explanation"`
	Recommendations            []string            `json:"recommendations"`
	LearningTips               []string            `json:"learning_tips"`
	OverallAssessment          *string             `json:"overall_assessment"`
}

// Normalize parses the raw model response and returns a structurally
// complete Analysis. It never fails: malformed JSON, chatter, or an empty
// response all produce the fixed fallback record. Every path stamps the
// record with now.
func Normalize(raw string, now time.Time) domain.Analysis {
	cleaned := stripWrapping(raw)

	var parsed rawAnalysis
	if cleaned == "" || json.Unmarshal([]byte(cleaned), &parsed) != nil {
		return fallback(now)
	}

	a := domain.Analysis{
		QualityScore:               defaultScore,
		Suggestions:                []domain.Suggestion{},
		TimeComplexity:             defaultComplexity,
		TimeComplexityExplanation:  "",
		SpaceComplexity:            defaultComplexity,
		SpaceComplexityExplanation: "",
		Recommendations:            []string{},
		LearningTips:               []string{},
		OverallAssessment:          defaultAssessment,
		Timestamp:                  now,
	}

	if parsed.QualityScore != nil {
		a.QualityScore = clampScore(*parsed.QualityScore)
	}
	if parsed.Suggestions != nil {
		a.Suggestions = parsed.Suggestions
	}
	if parsed.TimeComplexity != nil && *parsed.TimeComplexity != "" {
		a.TimeComplexity = *parsed.TimeComplexity
	}
	if parsed.TimeComplexityExplanation != nil {
		a.TimeComplexityExplanation = *parsed.TimeComplexityExplanation
	}
	if parsed.SpaceComplexity != nil && *parsed.SpaceComplexity != "" {
		a.SpaceComplexity = *parsed.SpaceComplexity
	}
	if parsed.SpaceComplexityExplanation != nil {
		a.SpaceComplexityExplanation = *parsed.SpaceComplexityExplanation
	}
	if parsed.Recommendations != nil {
		a.Recommendations = parsed.Recommendations
	}
	if parsed.LearningTips != nil {
		a.LearningTips = parsed.LearningTips
	}
	if parsed.OverallAssessment != nil && *parsed.OverallAssessment != "" {
		a.OverallAssessment = *parsed.OverallAssessment
	}

	return a
}

// fallback is the record returned when the upstream response is unusable.
// Shape-identical to a real analysis so clients never need a failure branch.
func fallback(now time.Time) domain.Analysis {
	return domain.Analysis{
		QualityScore:      defaultScore,
		Suggestions:       []domain.Suggestion{},
		TimeComplexity:    defaultComplexity,
		SpaceComplexity:   defaultComplexity,
		Recommendations:   []string{},
		LearningTips:      append([]string(nil), fallbackTips...),
		OverallAssessment: fallbackAssessment,
		Timestamp:         now,
	}
}

func clampScore(score int) int {
	if score < minQualityScore {
		return minQualityScore
	}
	if score > maxQualityScore {
		return maxQualityScore
	}

	return score
}

// stripWrapping removes markdown code fences and leading chatter that
// models commonly emit around the JSON payload.
func stripWrapping(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop a prefix line of chatter before the first JSON object.
	if !strings.HasPrefix(content, "{") {
		if idx := strings.Index(content, "\n{"); idx >= 0 {
			head := content[:idx]
			if !strings.Contains(head, "{") {
				content = content[idx+1:]
			}
		}
	}

	return strings.TrimSpace(content)
}
