package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nyaruka/phonenumbers"
	"gorm.io/gorm"

	"github.com/talentgate/resume-screener/internal/dtos"
	"github.com/talentgate/resume-screener/internal/models"
	"github.com/talentgate/resume-screener/internal/services"
)

type SubmissionHandler struct {
	SubmissionService *services.SubmissionService
	PostingService    *services.PostingService
}

func NewSubmissionHandler(s *services.SubmissionService, p *services.PostingService) *SubmissionHandler {
	return &SubmissionHandler{
		SubmissionService: s,
		PostingService:    p,
	}
}

// CreateSubmission is POST /postings/:id/submissions, a multipart form with
// a "resume" file plus full_name/email/phone fields.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	postingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting id"})
		return
	}
	posting, err := h.PostingService.GetPosting(uint(postingID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Posting not found"})
		return
	}
	if posting.Status != models.PostingStatusOpen {
		c.JSON(http.StatusConflict, gin.H{"error": "Posting is closed"})
		return
	}

	var form dtos.SubmissionForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data: " + err.Error()})
		return
	}

	// Normalize the phone up front; the dedup check and the stored row
	// both rely on canonical E.164.
	phone, err := normalizePhone(form.Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing resume file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read resume file"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read resume file"})
		return
	}

	submission, result, err := h.SubmissionService.Create(c.Request.Context(), services.SubmissionInput{
		PostingID: posting.ID,
		FullName:  form.FullName,
		Email:     form.Email,
		Phone:     phone,
		FileName:  fileHeader.Filename,
		Data:      data,
	})
	switch {
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"valid": false, "errors": result.Errors})
		return
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "errors": result.Errors})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, dtos.SubmissionResponse{
		ReferenceCode: submission.ReferenceCode,
		AccessToken:   submission.AccessToken,
		Status:        submission.Status,
		SubmittedAt:   submission.SubmittedAt,
	})
}

// GetSubmission is GET /submissions/:ref. The access token handed out at
// submission time is the only credential applicants have.
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	submission, result, ok := h.authorize(c)
	if !ok {
		return
	}

	resp := dtos.SubmissionStatusResponse{
		ReferenceCode: submission.ReferenceCode,
		Status:        submission.Status,
		SubmittedAt:   submission.SubmittedAt,
	}
	if result != nil {
		status := &dtos.ScoringStatus{Status: result.Status}
		if result.Status == models.ScoringStatusCompleted {
			status.EducationScore = result.EducationScore
			status.SkillsScore = result.SkillsScore
			status.ExperienceScore = result.ExperienceScore
			status.SupplementalScore = result.SupplementalScore
			status.OverallScore = result.OverallScore
			status.Category = result.Category
			status.Summary = result.Summary
		}
		resp.Scoring = status
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadResume is GET /submissions/:ref/resume, returning the original
// uploaded binary.
func (h *SubmissionHandler) DownloadResume(c *gin.Context) {
	submission, _, ok := h.authorize(c)
	if !ok {
		return
	}

	data, err := h.SubmissionService.DownloadResume(c.Request.Context(), submission)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resume"})
		return
	}

	contentType := "application/pdf"
	if submission.Extension == "docx" {
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	c.Header("Content-Disposition", `attachment; filename="`+submission.FileName+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func (h *SubmissionHandler) authorize(c *gin.Context) (*models.Submission, *models.ScoringResult, bool) {
	submission, result, err := h.SubmissionService.GetByReference(c.Param("ref"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return nil, nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return nil, nil, false
	}
	if c.GetHeader("X-Access-Token") != submission.AccessToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid access token"})
		return nil, nil, false
	}
	return submission, result, true
}

// normalizePhone canonicalizes to E.164. Numbers without an explicit country
// code are assumed US.
func normalizePhone(raw string) (string, error) {
	region := "US"
	if len(raw) > 0 && raw[0] == '+' {
		region = ""
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
