package http

type demoLoginRequest struct {
	UserType string `json:"user_type" validate:"required,oneof=alex sarah mike emma"`
}

type createReviewRequest struct {
	Code               string `json:"code" validate:"required"`
	Language           string `json:"language" validate:"required"`
	ProblemTitle       string `json:"problem_title" validate:"required"`
	ProblemDescription string `json:"problem_description"`
}

// reviewIDParam validates the {id} path segment before it reaches the
// service layer.
type reviewIDParam struct {
	ID string `validate:"required,custom_id"`
}

type addCommentRequest struct {
	Content      string `json:"content" validate:"required"`
	Line         *int   `json:"line,omitempty" validate:"omitempty,min=1"`
	IsPeerReview bool   `json:"is_peer_review"`
	Rating       *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type analyzeRequest struct {
	Code               string `json:"code" validate:"required"`
	Language           string `json:"language" validate:"required"`
	ProblemDescription string `json:"problem_description"`
	SkillLevel         string `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced"`
}
