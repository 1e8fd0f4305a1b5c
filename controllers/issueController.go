package controllers

import (
	"net/http"
	"strconv"

	"civiclens/models"
	"civiclens/services"
	"civiclens/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultPageSize   = 10
	maxPageSize       = 100
	defaultRecentSize = 10
)

type IssueController struct {
	service *services.IssueService
	logger  *zap.Logger
}

func NewIssueController(service *services.IssueService, logger *zap.Logger) *IssueController {
	return &IssueController{service: service, logger: logger}
}

// CreateIssue classifies and stores a citizen submission
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input struct {
		Description   string           `json:"description" binding:"max=5000"`
		Images        []string         `json:"images"`
		Location      *models.Location `json:"location"`
		ManualAddress string           `json:"manualAddress" binding:"max=300"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.service.Submit(c.Request.Context(), services.SubmitRequest{
		Description:   input.Description,
		Images:        input.Images,
		Location:      input.Location,
		ManualAddress: input.ManualAddress,
	})
	if err != nil {
		ic.respondError(c, err, "Failed to create issue")
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// issueListQuery holds the dashboard filters; "all" or an empty value disables one.
type issueListQuery struct {
	Status   string `form:"status" binding:"omitempty,eq=all|issue_status"`
	Severity string `form:"severity" binding:"omitempty,eq=all|issue_severity"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
}

func listQueryError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 && validationErrors[0].Field() == "Severity" {
		return "Invalid severity"
	}
	return "Invalid status"
}

// GetAllIssues handles retrieving issues with filtering, sorting and pagination
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	var query issueListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": listQueryError(err)})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	issues, err := ic.service.List(c.Request.Context(), services.Filter{
		Status:   query.Status,
		Severity: query.Severity,
		Search:   query.Search,
	})
	if err != nil {
		ic.respondError(c, err, "Failed to retrieve issues")
		return
	}

	// the store hands issues back oldest first
	if query.Sort != "oldest" {
		services.SortNewestFirst(issues)
	}

	total := len(issues)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues[start:end],
		"totalIssues": total,
		"totalPages":  (total + limit - 1) / limit,
		"currentPage": page,
	})
}

// GetIssue returns a single issue by id
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ic.respondError(c, err, "Failed to retrieve issue")
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus moves an issue to any status; there is no transition guard
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	var input struct {
		Status models.Status `json:"status" binding:"required,issue_status"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	issue, err := ic.service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		ic.respondError(c, err, "Failed to update issue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue updated successfully", "issue": issue})
}

// DeleteIssue removes an issue from the dashboard
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	if err := ic.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ic.respondError(c, err, "Failed to delete issue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// GetIssueStats returns the dashboard counters
func (ic *IssueController) GetIssueStats(c *gin.Context) {
	stats, err := ic.service.Stats(c.Request.Context())
	if err != nil {
		ic.respondError(c, err, "Failed to retrieve issue statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RecentIssues returns the most recently reported issues
func (ic *IssueController) RecentIssues(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRecentSize)))
	if err != nil || limit < 1 || limit > maxPageSize {
		limit = defaultRecentSize
	}

	issues, err := ic.service.Recent(c.Request.Context(), limit)
	if err != nil {
		ic.respondError(c, err, "Failed to retrieve recent issues")
		return
	}

	c.JSON(http.StatusOK, issues)
}

// respondError maps service and store errors onto status codes; anything unknown is a 500
// with the fallback message.
func (ic *IssueController) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrDescriptionRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please describe the issue"})
	case errors.Is(err, services.ErrLocationRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a location"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, store.ErrIssueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
	default:
		ic.logger.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
