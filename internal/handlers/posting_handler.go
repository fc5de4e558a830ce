package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talentgate/resume-screener/internal/dtos"
	"github.com/talentgate/resume-screener/internal/services"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type PostingHandler struct {
	PostingService *services.PostingService
}

func NewPostingHandler(p *services.PostingService) *PostingHandler {
	return &PostingHandler{PostingService: p}
}

func (h *PostingHandler) CreatePosting(c *gin.Context) {
	var req dtos.PostingCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	posting, err := h.PostingService.CreatePosting(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create posting"})
		return
	}
	c.JSON(http.StatusCreated, posting)
}

func (h *PostingHandler) ListPostings(c *gin.Context) {
	postings, err := h.PostingService.ListPostings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list postings"})
		return
	}
	c.JSON(http.StatusOK, postings)
}

func (h *PostingHandler) GetPosting(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting id"})
		return
	}
	posting, err := h.PostingService.GetPosting(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Posting not found"})
		return
	}
	c.JSON(http.StatusOK, posting)
}
