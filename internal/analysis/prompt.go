// package analysis implements the code-analysis pipeline: prompt
// construction, the completion call, and normalization of the model's
// response into a total Analysis record.
package analysis

import (
	"fmt"

	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/domain"
)

// Request carries everything the prompt builder needs. ProblemDescription
// is optional; SkillLevel defaults to intermediate.
type Request struct {
	Code               string
	Language           string
	ProblemDescription string
	SkillLevel         domain.SkillLevel
}

// BuildPrompt produces the system and user messages for the completion
// call. Pure function of its arguments. It rejects empty code or a missing
// language tag so callers fail before spending an upstream call.
func BuildPrompt(req Request) (system string, user string, err error) {
	const op = "internal.analysis.BuildPrompt"

	if req.Code == "" {
		return "", "", fmt.Errorf("%s: %w: code is required", op, apperrors.ErrInvalidInput)
	}
	if req.Language == "" {
		return "", "", fmt.Errorf("%s: %w: language is required", op, apperrors.ErrInvalidInput)
	}

	skill := req.SkillLevel
	if skill == "" {
		skill = domain.SkillIntermediate
	}

	problem := req.ProblemDescription
	if problem == "" {
		problem = "General code review"
	}

	system = fmt.Sprintf(`You are an expert code reviewer and programming mentor. Analyze the provided code and give comprehensive feedback.

CONTEXT:
- Language: %s
- Skill Level: %s
- Problem: %s

ANALYSIS REQUIREMENTS:
1. Quality Score (0-10): Rate overall code quality
2. Suggestions: Provide specific, actionable suggestions with:
   - Type: error, warning, suggestion, style
   - Title: Short descriptive title
   - Description: Detailed explanation
   - Line: Approximate line number (if applicable)
   - Original: The problematic code snippet
   - Replacement: The improved code snippet
3. Time Complexity: Estimate the Big-O time complexity of the main function or algorithm, and explain why.
4. Space Complexity: Estimate the Big-O space complexity, and explain why.
5. Learning Tips: Educational insights for the student's skill level
6. Overall Assessment: Brief summary

RESPONSE FORMAT (JSON):
{
  "quality_score": 8,
  "suggestions": [
    {
      "type": "suggestion",
      "title": "Add input validation",
      "description": "Consider adding checks for edge cases",
      "line": 1,
      "original": "function example(x) {",
      "replacement": "function example(x) {\n  if (x == null) return null;"
    }
  ],
  "time_complexity": "O(n)",
  "time_complexity_explanation": "The function iterates through the array once...",
  "space_complexity": "O(n)",
  "space_complexity_explanation": "A set is used to store up to n elements...",
  "recommendations": ["array of improvement suggestions"],
  "learning_tips": [
    "Always validate inputs in production code",
    "Consider edge cases when designing functions"
  ],
  "overall_assessment": "Good code with room for improvement in error handling"
}

Focus on being educational and encouraging, especially for %s level students.`, req.Language, skill, problem, skill)

	user = fmt.Sprintf("Please analyze this %s code:\n\n%s", req.Language, req.Code)

	return system, user, nil
}
