package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"

	"github.com/talentgate/resume-screener/internal/models"
	"github.com/talentgate/resume-screener/internal/queue"
	"github.com/talentgate/resume-screener/internal/retrypolicy"
	"github.com/talentgate/resume-screener/internal/scoring"
)

// StatusPublisher pushes progress events for one submission.
type StatusPublisher interface {
	PublishStatusUpdate(update queue.StatusUpdate) error
}

// ScoringService runs the async half of the pipeline: prompt the LLM with the
// redacted resume text, parse the component scores, derive overall/category
// and persist the result. The LLM client is constructed by the caller and
// injected; this service owns no global state.
type ScoringService struct {
	DB        *gorm.DB
	LLM       llms.Model
	Publisher StatusPublisher

	LLMRetry retrypolicy.Policy
	DBRetry  retrypolicy.Policy
}

func NewScoringService(db *gorm.DB, llm llms.Model, publisher StatusPublisher) *ScoringService {
	return &ScoringService{
		DB:        db,
		LLM:       llm,
		Publisher: publisher,
		LLMRetry:  retrypolicy.Policy{Attempts: 2, BaseDelay: time.Second},
		DBRetry:   retrypolicy.Default,
	}
}

const reviewPrompt = `
You are an expert technical recruiter reviewing one resume against one job posting.

### INSTRUCTIONS:
1. **Read** the job posting and the resume below. PII in the resume has been replaced with placeholder tokens; ignore them.
2. **Score** each dimension from 0 to 100.
3. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "education_score": 0-100,
    "skills_score": 0-100,
    "experience_score": 0-100,
    "supplemental_score": 0-100,
    "summary": "Two or three sentences on the overall fit."
}

### JOB POSTING:
Title: %s

%s

### RESUME:
%s
`

// componentPayload is the JSON shape we ask the model for.
type componentPayload struct {
	EducationScore    int    `json:"education_score"`
	SkillsScore       int    `json:"skills_score"`
	ExperienceScore   int    `json:"experience_score"`
	SupplementalScore int    `json:"supplemental_score"`
	Summary           string `json:"summary"`
}

// ProcessTask scores one submission end to end. Errors mark the scoring
// record failed and are reported back to the consumer; they never take the
// worker down.
func (s *ScoringService) ProcessTask(task queue.ScoringTask) error {
	ctx := context.Background()

	s.publishUpdate(task.ReferenceCode, models.ScoringStatusProcessing, "analysis started")
	s.setStatus(task.SubmissionID, models.ScoringStatusProcessing, "")

	var submission models.Submission
	if err := s.DB.First(&submission, task.SubmissionID).Error; err != nil {
		return s.fail(task, fmt.Errorf("failed to load submission: %w", err))
	}
	var posting models.Posting
	if err := s.DB.First(&posting, submission.PostingID).Error; err != nil {
		return s.fail(task, fmt.Errorf("failed to load posting: %w", err))
	}

	// Empty redacted text (image-only PDF) is still scored; the model just
	// has very little to work with and scores accordingly.
	prompt := fmt.Sprintf(reviewPrompt, posting.Title, posting.Description, submission.RedactedText)

	response, err := retrypolicy.Do(s.LLMRetry, func() (string, error) {
		return llms.GenerateFromSinglePrompt(ctx, s.LLM, prompt)
	})
	if err != nil {
		return s.fail(task, fmt.Errorf("LLM call failed: %w", err))
	}

	payload, err := parseComponents(response)
	if err != nil {
		return s.fail(task, fmt.Errorf("failed to parse scores: %w", err))
	}

	components := scoring.Components{
		Education:    payload.EducationScore,
		Skills:       payload.SkillsScore,
		Experience:   payload.ExperienceScore,
		Supplemental: payload.SupplementalScore,
	}
	overall := scoring.Overall(components)
	category := scoring.Categorize(overall)

	var result models.ScoringResult
	if err := s.DB.Where("submission_id = ?", task.SubmissionID).First(&result).Error; err != nil {
		return s.fail(task, fmt.Errorf("failed to load scoring record: %w", err))
	}
	result.EducationScore = components.Education
	result.SkillsScore = components.Skills
	result.ExperienceScore = components.Experience
	result.SupplementalScore = components.Supplemental
	result.OverallScore = overall
	result.Category = category
	result.Summary = payload.Summary
	result.Status = models.ScoringStatusCompleted
	result.Error = ""

	// Save (not a batch update) so the BeforeSave integrity hook re-derives
	// overall and category before the row lands.
	if _, err := retrypolicy.Do(s.DBRetry, func() (struct{}, error) {
		return struct{}{}, s.DB.Save(&result).Error
	}); err != nil {
		return s.fail(task, fmt.Errorf("failed to save scoring result: %w", err))
	}

	s.publishUpdate(task.ReferenceCode, models.ScoringStatusCompleted, "analysis completed")
	log.Printf("submission %s scored: overall=%d category=%q", task.ReferenceCode, overall, category)
	return nil
}

func (s *ScoringService) fail(task queue.ScoringTask, err error) error {
	s.setStatus(task.SubmissionID, models.ScoringStatusFailed, err.Error())
	s.publishUpdate(task.ReferenceCode, models.ScoringStatusFailed, "analysis failed")
	return err
}

func (s *ScoringService) setStatus(submissionID uint, status, errMsg string) {
	err := s.DB.Model(&models.ScoringResult{}).
		Where("submission_id = ?", submissionID).
		Updates(map[string]any{"status": status, "error": errMsg}).Error
	if err != nil {
		log.Printf("⚠️ failed to update scoring status for submission %d: %v", submissionID, err)
	}
}

func (s *ScoringService) publishUpdate(reference, status, message string) {
	update := queue.StatusUpdate{
		ReferenceCode: reference,
		Status:        status,
		Message:       message,
		Timestamp:     time.Now(),
	}
	if err := s.Publisher.PublishStatusUpdate(update); err != nil {
		log.Println("failed to publish update:", err)
	}
}

// parseComponents pulls the JSON object out of the model response. Models
// sometimes wrap output in markdown fences or add prose around the object,
// so strip fences first, then take the outermost brace pair.
func parseComponents(response string) (componentPayload, error) {
	clean := stripFences(response)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return componentPayload{}, fmt.Errorf("no JSON object found in response")
	}

	var payload componentPayload
	if err := json.Unmarshal([]byte(clean[start:end+1]), &payload); err != nil {
		return componentPayload{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	for _, v := range []int{
		payload.EducationScore, payload.SkillsScore,
		payload.ExperienceScore, payload.SupplementalScore,
	} {
		if v < 0 || v > 100 {
			return componentPayload{}, fmt.Errorf("component score %d outside [0, 100]", v)
		}
	}
	return payload, nil
}

func stripFences(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
