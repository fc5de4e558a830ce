package services

import (
	"github.com/talentgate/resume-screener/internal/dtos"
	"github.com/talentgate/resume-screener/internal/models"
	"gorm.io/gorm"
)

type PostingService struct {
	DB *gorm.DB
}

func NewPostingService(db *gorm.DB) *PostingService {
	return &PostingService{
		DB: db,
	}
}

func (s *PostingService) CreatePosting(req *dtos.PostingCreationRequest) (*models.Posting, error) {
	posting := &models.Posting{
		Title:       req.Title,
		Department:  req.Department,
		Description: req.Description,
		Status:      models.PostingStatusOpen,
	}
	if err := s.DB.Create(posting).Error; err != nil {
		return nil, err
	}
	return posting, nil
}

func (s *PostingService) ListPostings() ([]models.Posting, error) {
	var postings []models.Posting
	if err := s.DB.Order("created_at desc").Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (s *PostingService) GetPosting(id uint) (*models.Posting, error) {
	var posting models.Posting
	if err := s.DB.First(&posting, id).Error; err != nil {
		return nil, err
	}
	return &posting, nil
}
