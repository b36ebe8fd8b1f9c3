package memory

import (
	"context"
	"time"

	"github.com/codesye/studentcode-service/internal/domain"
)

func intPtr(i int) *int { return &i }

// Seed loads the demo accounts and a few sample reviews so a fresh local
// instance has a populated feed.
func Seed(users *UserStore, reviews *ReviewStore) error {
	for _, u := range SampleUsers() {
		users.Add(u)
	}

	ctx := context.Background()
	for _, r := range sampleReviews() {
		review := r
		if err := reviews.Create(ctx, &review); err != nil {
			return err
		}
	}

	return nil
}

// SampleUsers returns the four demo accounts reachable through demo login.
func SampleUsers() []domain.User {
	return []domain.User{
		{
			ID:        "user-1",
			Username:  "alex_coder",
			Email:     "alex@stanford.edu",
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "user-2",
			Username:  "sarah_dev",
			Email:     "sarah@mit.edu",
			CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "user-3",
			Username:  "mike_ml",
			Email:     "mike@berkeley.edu",
			CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "user-4",
			Username:  "emma_web",
			Email:     "emma@cmu.edu",
			CreatedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

func sampleReviews() []domain.Review {
	return []domain.Review{
		{
			ID:       "review-1",
			UserID:   "user-1",
			Username: "alex_coder",
			Code: `function binarySearch(arr, target) {
    let left = 0;
    let right = arr.length - 1;

    while (left <= right) {
        const mid = Math.floor((left + right) / 2);
        if (arr[mid] === target) return mid;
        if (arr[mid] < target) left = mid + 1;
        else right = mid - 1;
    }
    return -1;
}`,
			Language:           "javascript",
			ProblemTitle:       "Binary Search Implementation",
			ProblemDescription: "Implement binary search algorithm to find a target element in a sorted array. Return the index if found, -1 if not found.",
			Analysis: domain.Analysis{
				QualityScore: 9,
				Suggestions: []domain.Suggestion{
					{
						Type:        domain.SuggestionStyle,
						Title:       "Add input validation",
						Description: "Consider adding checks for null/undefined input",
						Line:        intPtr(1),
					},
				},
				TimeComplexity:             "O(log n)",
				TimeComplexityExplanation:  "The search space halves on every iteration.",
				SpaceComplexity:            "O(1)",
				SpaceComplexityExplanation: "Only two index variables are kept.",
				Recommendations: []string{
					"Add input validation for edge cases",
				},
				LearningTips: []string{
					"Binary search is fundamental for understanding algorithms",
					"Practice drawing out the algorithm",
				},
				OverallAssessment: "Excellent implementation of binary search algorithm. Clean, efficient code with O(log n) time complexity.",
				Timestamp:         time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			},
			CreatedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			Comments: []domain.Comment{
				{
					ID:        "comment-1",
					UserID:    "user-2",
					Username:  "sarah_dev",
					Content:   "Great implementation! Very clean and efficient.",
					CreatedAt: time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
				},
			},
		},
		{
			ID:       "review-2",
			UserID:   "user-3",
			Username: "mike_ml",
			Code: `def fibonacci(n):
    if n <= 1:
        return n
    return fibonacci(n-1) + fibonacci(n-2)`,
			Language:           "python",
			ProblemTitle:       "Fibonacci Sequence",
			ProblemDescription: "Implement the Fibonacci sequence using recursion.",
			Analysis: domain.Analysis{
				QualityScore: 6,
				Suggestions: []domain.Suggestion{
					{
						Type:        domain.SuggestionWarning,
						Title:       "Exponential time complexity",
						Description: "Use memoization or an iterative approach",
						Line:        intPtr(1),
					},
				},
				TimeComplexity:             "O(2^n)",
				TimeComplexityExplanation:  "Each call spawns two recursive calls without caching.",
				SpaceComplexity:            "O(n)",
				SpaceComplexityExplanation: "The recursion depth grows linearly with n.",
				Recommendations: []string{
					"Use memoization to improve performance",
					"Consider iterative approach for large numbers",
				},
				LearningTips: []string{
					"Understand time complexity",
					"Learn about memoization",
				},
				OverallAssessment: "Correct implementation but inefficient for large numbers. Good for learning recursion.",
				Timestamp:         time.Date(2024, 3, 13, 9, 45, 0, 0, time.UTC),
			},
			CreatedAt: time.Date(2024, 3, 13, 9, 45, 0, 0, time.UTC),
			Comments:  []domain.Comment{},
		},
	}
}
