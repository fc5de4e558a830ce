package dtos

import "time"

type PostingCreationRequest struct {
	Title       string `json:"title" binding:"required"`
	Department  string `json:"department"`
	Description string `json:"description" binding:"required"`
}

// SubmissionForm is the non-file half of the multipart upload.
type SubmissionForm struct {
	FullName string `form:"full_name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Phone    string `form:"phone" binding:"required"`
}

type SubmissionResponse struct {
	ReferenceCode string    `json:"reference_code"`
	AccessToken   string    `json:"access_token"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

type SubmissionStatusResponse struct {
	ReferenceCode string         `json:"reference_code"`
	Status        string         `json:"status"`
	SubmittedAt   time.Time      `json:"submitted_at"`
	Scoring       *ScoringStatus `json:"scoring,omitempty"`
}

type ScoringStatus struct {
	Status            string `json:"status"`
	EducationScore    int    `json:"education_score,omitempty"`
	SkillsScore       int    `json:"skills_score,omitempty"`
	ExperienceScore   int    `json:"experience_score,omitempty"`
	SupplementalScore int    `json:"supplemental_score,omitempty"`
	OverallScore      int    `json:"overall_score,omitempty"`
	Category          string `json:"category,omitempty"`
	Summary           string `json:"summary,omitempty"`
}
