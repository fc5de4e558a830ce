package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentgate/resume-screener/internal/models"
	"github.com/talentgate/resume-screener/internal/parser"
	"github.com/talentgate/resume-screener/internal/queue"
	"github.com/talentgate/resume-screener/internal/redact"
	"github.com/talentgate/resume-screener/internal/retrypolicy"
	"github.com/talentgate/resume-screener/internal/validation"
)

var (
	// ErrValidationFailed means the file itself was rejected; details are
	// in the returned validation result.
	ErrValidationFailed = errors.New("submission validation failed")
	// ErrDuplicate means this applicant already submitted to this posting.
	ErrDuplicate = errors.New("duplicate submission")
)

// BlobStore is the slice of the object store the submission flow needs.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// TaskPublisher enqueues scoring work for accepted submissions.
type TaskPublisher interface {
	PublishScoringTask(task queue.ScoringTask) error
}

// TextExtractor matches parser.ExtractText.
type TextExtractor func(ext string, data []byte) (string, error)

type SubmissionService struct {
	DB        *gorm.DB
	Store     BlobStore
	Publisher TaskPublisher
	Extract   TextExtractor
	Retry     retrypolicy.Policy
}

func NewSubmissionService(db *gorm.DB, store BlobStore, publisher TaskPublisher) *SubmissionService {
	return &SubmissionService{
		DB:        db,
		Store:     store,
		Publisher: publisher,
		Extract:   parser.ExtractText,
		Retry:     retrypolicy.Default,
	}
}

// DuplicateCheck holds the three independent per-posting existence checks.
type DuplicateCheck struct {
	DigestMatch bool
	EmailMatch  bool
	PhoneMatch  bool
}

func (d DuplicateCheck) Any() bool {
	return d.DigestMatch || d.EmailMatch || d.PhoneMatch
}

// FieldErrors expands the matches into coded errors for the client.
func (d DuplicateCheck) FieldErrors() []validation.FieldError {
	var errs []validation.FieldError
	if d.DigestMatch {
		errs = append(errs, validation.FieldError{
			Field:   "resume",
			Code:    validation.CodeDuplicateDetected,
			Message: "an identical resume was already submitted for this posting",
		})
	}
	if d.EmailMatch {
		errs = append(errs, validation.FieldError{
			Field:   "email",
			Code:    validation.CodeDuplicateDetected,
			Message: "this email already submitted for this posting",
		})
	}
	if d.PhoneMatch {
		errs = append(errs, validation.FieldError{
			Field:   "phone",
			Code:    validation.CodeDuplicateDetected,
			Message: "this phone number already submitted for this posting",
		})
	}
	return errs
}

// CheckDuplicate runs the three existence checks scoped to one posting.
// Email matching is case-insensitive (rows store lower-case); phone is a
// byte-exact comparison because input is already E.164. The same digest,
// email or phone under a different posting is not a duplicate.
func (s *SubmissionService) CheckDuplicate(postingID uint, digest, email, phone string) (DuplicateCheck, error) {
	var check DuplicateCheck

	type probe struct {
		column string
		value  string
		match  *bool
	}
	probes := []probe{
		{"content_digest", digest, &check.DigestMatch},
		{"email", strings.ToLower(email), &check.EmailMatch},
		{"phone", phone, &check.PhoneMatch},
	}
	for _, p := range probes {
		var count int64
		err := s.DB.Model(&models.Submission{}).
			Where("posting_id = ? AND "+p.column+" = ?", postingID, p.value).
			Count(&count).Error
		if err != nil {
			return DuplicateCheck{}, fmt.Errorf("duplicate check on %s failed: %w", p.column, err)
		}
		*p.match = count > 0
	}
	return check, nil
}

// SubmissionInput is what the upload handler collects from the multipart
// form. Phone must already be normalized to E.164.
type SubmissionInput struct {
	PostingID uint
	FullName  string
	Email     string
	Phone     string
	FileName  string
	Data      []byte
}

// Create runs the whole synchronous intake pipeline: validate, hash, check
// duplicates, parse, redact, store the binary, persist the submission and
// enqueue scoring. The returned validation result always carries the coded
// errors for the client when err is ErrValidationFailed or ErrDuplicate.
func (s *SubmissionService) Create(ctx context.Context, in SubmissionInput) (*models.Submission, validation.Result, error) {
	res := validation.ValidateFile(in.Data, in.FileName)
	if !res.Valid {
		return nil, res, ErrValidationFailed
	}

	check, err := s.CheckDuplicate(in.PostingID, res.Digest, in.Email, in.Phone)
	if err != nil {
		return nil, res, err
	}
	if check.Any() {
		res.Valid = false
		res.Errors = append(res.Errors, check.FieldErrors()...)
		return nil, res, ErrDuplicate
	}

	text, err := s.Extract(res.Extension, in.Data)
	if err != nil {
		// Declared format, right magic bytes, but the body doesn't
		// parse. Same taxonomy bucket as a magic-byte mismatch.
		res.Valid = false
		res.ContentOK = false
		res.Errors = append(res.Errors, validation.FieldError{
			Field:   "resume",
			Code:    validation.CodeInvalidFileContent,
			Message: "file could not be parsed as " + res.Extension,
		})
		return nil, res, ErrValidationFailed
	}

	reference := newReferenceCode()
	objectKey := fmt.Sprintf("resumes/%d/%s.%s", in.PostingID, reference, res.Extension)

	if _, err := retrypolicy.Do(s.Retry, func() (struct{}, error) {
		return struct{}{}, s.Store.Upload(ctx, objectKey, contentTypeFor(res.Extension), in.Data)
	}); err != nil {
		return nil, res, fmt.Errorf("failed to store resume binary: %w", err)
	}

	submission := &models.Submission{
		PostingID:     in.PostingID,
		ReferenceCode: reference,
		AccessToken:   uuid.NewString(),
		FullName:      in.FullName,
		Email:         strings.ToLower(in.Email),
		Phone:         in.Phone,
		ObjectKey:     objectKey,
		FileName:      in.FileName,
		FileSize:      int64(len(in.Data)),
		Extension:     res.Extension,
		ContentDigest: res.Digest,
		ExtractedText: text,
		RedactedText:  redact.Redact(text),
		Status:        models.SubmissionStatusSubmitted,
		SubmittedAt:   time.Now(),
	}

	if err := s.DB.Create(submission).Error; err != nil {
		// Two identical submissions racing past the read check: the
		// unique constraint picks the winner and the loser gets the
		// same duplicate_detected outcome as the read path.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			res.Valid = false
			res.Errors = append(res.Errors, validation.FieldError{
				Field:   "resume",
				Code:    validation.CodeDuplicateDetected,
				Message: "an identical submission already exists for this posting",
			})
			return nil, res, ErrDuplicate
		}
		return nil, res, fmt.Errorf("failed to persist submission: %w", err)
	}

	// Scoring result starts queued; the worker moves it along.
	if err := s.DB.Create(&models.ScoringResult{
		SubmissionID: submission.ID,
		Status:       models.ScoringStatusQueued,
	}).Error; err != nil {
		return nil, res, fmt.Errorf("failed to create scoring record: %w", err)
	}

	task := queue.ScoringTask{
		SubmissionID:  submission.ID,
		PostingID:     in.PostingID,
		ReferenceCode: reference,
	}
	if err := s.Publisher.PublishScoringTask(task); err != nil {
		// The submission stands; scoring can be re-queued out of band.
		log.Printf("⚠️ failed to enqueue scoring for %s: %v", reference, err)
	}

	return submission, res, nil
}

// GetByReference loads a submission with its scoring result, if any.
func (s *SubmissionService) GetByReference(reference string) (*models.Submission, *models.ScoringResult, error) {
	var submission models.Submission
	if err := s.DB.Where("reference_code = ?", reference).First(&submission).Error; err != nil {
		return nil, nil, err
	}
	var result models.ScoringResult
	err := s.DB.Where("submission_id = ?", submission.ID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &submission, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &submission, &result, nil
}

// DownloadResume fetches the original binary from the object store.
func (s *SubmissionService) DownloadResume(ctx context.Context, submission *models.Submission) ([]byte, error) {
	return retrypolicy.Do(s.Retry, func() ([]byte, error) {
		return s.Store.Download(ctx, submission.ObjectKey)
	})
}

// newReferenceCode generates the short code applicants use to check status.
func newReferenceCode() string {
	return "SUB-" + strings.ToUpper(uuid.NewString()[:8])
}

func contentTypeFor(ext string) string {
	if ext == "pdf" {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
