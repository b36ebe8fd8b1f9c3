// package progress derives summary statistics from a user's review history.
// Everything here is a pure function of its inputs; snapshots are
// recomputed on every call and never stored.
package progress

import (
	"time"

	"github.com/codesye/studentcode-service/internal/domain"
)

const (
	// trendWindow is the fixed comparison window: mean of the last three
	// scores minus mean of the first three, computed only once six
	// analyses exist. Deliberately not a sliding window.
	trendWindow    = 3
	trendMinCount  = 2 * trendWindow
	weeklyDays     = 7
	trendThreshold = 2.0
	polyglotCount  = 3
)

// Achievement flags derived from the snapshot.
const (
	AchievementFirstAnalysis   = "first_analysis"
	AchievementQualityImprover = "quality_improver"
	AchievementPolyglot        = "polyglot"
	AchievementConsistency     = "consistency"
)

// Compute builds a ProgressSnapshot from the user's reviews, which must be
// ordered by creation time ascending (the repository contract). now anchors
// the trailing 7-day activity histogram.
func Compute(reviews []domain.Review, now time.Time) domain.ProgressSnapshot {
	snapshot := domain.ProgressSnapshot{
		TotalAnalyses:    len(reviews),
		AverageScore:     averageScore(reviews),
		ImprovementTrend: improvementTrend(reviews),
		Languages:        languageBreakdown(reviews),
		WeeklyProgress:   weeklyProgress(reviews, now),
	}
	snapshot.Achievements = achievements(snapshot)

	return snapshot
}

func averageScore(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum int
	for _, r := range reviews {
		sum += r.Analysis.QualityScore
	}

	return float64(sum) / float64(len(reviews))
}

func improvementTrend(reviews []domain.Review) float64 {
	if len(reviews) < trendMinCount {
		return 0
	}

	first := reviews[:trendWindow]
	last := reviews[len(reviews)-trendWindow:]

	return windowMean(last) - windowMean(first)
}

func windowMean(window []domain.Review) float64 {
	var sum int
	for _, r := range window {
		sum += r.Analysis.QualityScore
	}

	return float64(sum) / float64(len(window))
}

func languageBreakdown(reviews []domain.Review) map[string]domain.LanguageStats {
	type acc struct {
		count int
		total int
	}

	byLang := make(map[string]acc)
	for _, r := range reviews {
		a := byLang[r.Language]
		a.count++
		a.total += r.Analysis.QualityScore
		byLang[r.Language] = a
	}

	stats := make(map[string]domain.LanguageStats, len(byLang))
	for lang, a := range byLang {
		stats[lang] = domain.LanguageStats{
			Count:        a.count,
			AverageScore: float64(a.total) / float64(a.count),
		}
	}

	return stats
}

// weeklyProgress counts analyses per calendar day over the trailing seven
// days including today, oldest day first. Day boundaries are local to now's
// location.
func weeklyProgress(reviews []domain.Review, now time.Time) []domain.DayActivity {
	days := make([]domain.DayActivity, 0, weeklyDays)

	for i := weeklyDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		for _, r := range reviews {
			created := r.CreatedAt.In(day.Location())
			if !created.Before(dayStart) && created.Before(dayEnd) {
				count++
			}
		}

		days = append(days, domain.DayActivity{
			Date:  dayStart.Format("2006-01-02"),
			Count: count,
		})
	}

	return days
}

func achievements(s domain.ProgressSnapshot) []string {
	unlocked := []string{}

	if s.TotalAnalyses > 0 {
		unlocked = append(unlocked, AchievementFirstAnalysis)
	}
	if s.ImprovementTrend >= trendThreshold {
		unlocked = append(unlocked, AchievementQualityImprover)
	}
	if len(s.Languages) >= polyglotCount {
		unlocked = append(unlocked, AchievementPolyglot)
	}

	activeDays := 0
	for _, day := range s.WeeklyProgress {
		if day.Count > 0 {
			activeDays++
		}
	}
	if activeDays >= weeklyDays {
		unlocked = append(unlocked, AchievementConsistency)
	}

	return unlocked
}
