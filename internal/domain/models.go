package domain

import "time"

type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SkillLevel tunes the tone of the generated feedback.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// ParseSkillLevel maps unknown or empty values to the intermediate default.
func ParseSkillLevel(s string) SkillLevel {
	switch SkillLevel(s) {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return SkillLevel(s)
	default:
		return SkillIntermediate
	}
}

type SuggestionType string

const (
	SuggestionError      SuggestionType = "error"
	SuggestionWarning    SuggestionType = "warning"
	SuggestionSuggestion SuggestionType = "suggestion"
	SuggestionStyle      SuggestionType = "style"
)

type Suggestion struct {
	Type        SuggestionType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Line        *int           `json:"line,omitempty"`
	Original    string         `json:"original,omitempty"`
	Replacement string         `json:"replacement,omitempty"`
}

// Analysis is the structured feedback record for a single code submission.
// The normalizer guarantees every field has a value, so a degraded analysis
// is indistinguishable in shape from a full one.
type Analysis struct {
	QualityScore               int          `json:"quality_score"`
	Suggestions                []Suggestion `json:"suggestions"`
	TimeComplexity             string       `json:"time_complexity"`
	TimeComplexityExplanation  string       `json:"time_complexity_explanation"`
	SpaceComplexity            string       `json:"space_complexity"`
	SpaceComplexityExplanation string       `json:"space_complexity_explanation"`
	Recommendations            []string     `json:"recommendations"`
	LearningTips               []string     `json:"learning_tips"`
	OverallAssessment          string       `json:"overall_assessment"`
	Timestamp                  time.Time    `json:"timestamp"`
}

type Comment struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	Content      string    `db:"content" json:"content"`
	Line         *int      `db:"line" json:"line,omitempty"`
	IsPeerReview bool      `db:"is_peer_review" json:"is_peer_review,omitempty"`
	Rating       *int      `db:"rating" json:"rating,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Review is a submitted code sample plus its analysis and comment thread.
// Created on submission, mutated only by comment append, never deleted.
type Review struct {
	ID                 string    `db:"id" json:"id"`
	UserID             string    `db:"user_id" json:"user_id"`
	Username           string    `db:"username" json:"username"`
	Code               string    `db:"code" json:"code"`
	Language           string    `db:"language" json:"language"`
	ProblemTitle       string    `db:"problem_title" json:"problem_title"`
	ProblemDescription string    `db:"problem_description" json:"problem_description"`
	Analysis           Analysis  `json:"analysis"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	Comments           []Comment `json:"comments"`
}

type LanguageStats struct {
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
}

type DayActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ProgressSnapshot summarizes one user's analysis history. It is derived on
// every request and never stored.
type ProgressSnapshot struct {
	TotalAnalyses    int                      `json:"total_analyses"`
	AverageScore     float64                  `json:"average_score"`
	ImprovementTrend float64                  `json:"improvement_trend"`
	Languages        map[string]LanguageStats `json:"languages"`
	WeeklyProgress   []DayActivity            `json:"weekly_progress"`
	Achievements     []string                 `json:"achievements"`
}
