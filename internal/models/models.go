package models

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/talentgate/resume-screener/internal/scoring"
)

const (
	PostingStatusOpen   = "OPEN"
	PostingStatusClosed = "CLOSED"

	SubmissionStatusSubmitted = "submitted"

	ScoringStatusQueued     = "queued"
	ScoringStatusProcessing = "processing"
	ScoringStatusCompleted  = "completed"
	ScoringStatusFailed     = "failed"
)

type Posting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Department  string `json:"department"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"default:'OPEN'" json:"status"`

	// 'omitempty' prevents infinite loops when fetching a Posting ->
	// Submissions -> Posting -> ...
	Submissions []Submission `json:"submissions,omitempty"`
}

// Submission is one applicant-to-posting pairing. Immutable once created.
// Duplicate protection lives in the three composite unique indexes: the same
// resume digest, email or phone may appear again only under a different
// posting. The dedup read check catches most duplicates up front; these
// constraints decide the race when two identical submissions arrive at once.
type Submission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PostingID uint    `gorm:"not null;uniqueIndex:ux_submissions_posting_digest,priority:1;uniqueIndex:ux_submissions_posting_email,priority:1;uniqueIndex:ux_submissions_posting_phone,priority:1" json:"posting_id"`
	Posting   Posting `json:"-"`

	ReferenceCode string `gorm:"uniqueIndex;not null" json:"reference_code"`
	AccessToken   string `gorm:"uniqueIndex;not null" json:"-"`

	FullName string `gorm:"not null" json:"full_name"`
	// Stored lower-cased so the per-posting uniqueness is case-insensitive.
	Email string `gorm:"not null;uniqueIndex:ux_submissions_posting_email,priority:2" json:"email"`
	// E.164, normalized before it reaches this layer.
	Phone string `gorm:"not null;uniqueIndex:ux_submissions_posting_phone,priority:2" json:"phone"`

	ObjectKey     string `gorm:"not null" json:"-"`
	FileName      string `json:"file_name"`
	FileSize      int64  `json:"file_size"`
	Extension     string `json:"extension"`
	ContentDigest string `gorm:"not null;uniqueIndex:ux_submissions_posting_digest,priority:2" json:"content_digest"`

	ExtractedText string `gorm:"type:text" json:"-"`
	RedactedText  string `gorm:"type:text" json:"-"`

	Status      string    `gorm:"default:'submitted'" json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ScoringResult holds the AI reviewer's component scores for one submission
// plus the derived overall score and category.
type ScoringResult struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SubmissionID uint `gorm:"uniqueIndex;not null" json:"submission_id"`

	EducationScore    int `json:"education_score"`
	SkillsScore       int `json:"skills_score"`
	ExperienceScore   int `json:"experience_score"`
	SupplementalScore int `json:"supplemental_score"`

	OverallScore int    `json:"overall_score"`
	Category     string `json:"category"`
	Summary      string `gorm:"type:text" json:"summary"`

	Status string `gorm:"default:'queued'" json:"status"`
	Error  string `json:"-"`
}

// BeforeSave re-derives the overall score and category from the components
// and rejects any completed record that disagrees. This should never fire
// while the scoring pipeline is the sole writer; if it does, something is
// corrupting stored scores and we want it loud.
func (r *ScoringResult) BeforeSave(tx *gorm.DB) error {
	if r.Status != ScoringStatusCompleted {
		return nil
	}
	components := scoring.Components{
		Education:    r.EducationScore,
		Skills:       r.SkillsScore,
		Experience:   r.ExperienceScore,
		Supplemental: r.SupplementalScore,
	}
	if err := scoring.Verify(components, r.OverallScore, r.Category); err != nil {
		log.Printf("❌ scoring integrity check failed for submission %d: %v", r.SubmissionID, err)
		return err
	}
	return nil
}
