package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/models"
	"trustgrade-workers/internal/profile"

	"github.com/gin-gonic/gin"
)

// searchQuery binds the directory filter query string.
type searchQuery struct {
	Query     string `form:"q" binding:"max=200"`
	Industry  string `form:"industry"`
	Location  string `form:"location"`
	Size      string `form:"size"`
	Grade     string `form:"grade"`
	MinRating string `form:"minRating"`
	Verified  bool   `form:"verified"`
}

type searchResponse struct {
	Businesses []models.BusinessListing `json:"businesses"`
	Total      int                      `json:"total"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}

func (s *Server) handleViews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"views": models.Views, "default": models.ViewDashboard})
}

func (s *Server) handleSearch(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.writeError(c, errors.NewInvalidSearchCriteriaError(err.Error()))
		return
	}

	minRating, err := directory.ParseMinRating(q.MinRating)
	if err != nil {
		s.writeError(c, err)
		return
	}

	size, err := directory.ParseSize(q.Size)
	if err != nil {
		s.writeError(c, err)
		return
	}

	listings, err := s.directory.Search(c.Request.Context(), directory.Criteria{
		Query:        strings.TrimSpace(q.Query),
		Industry:     q.Industry,
		Location:     q.Location,
		Size:         size,
		Grade:        q.Grade,
		MinRating:    minRating,
		VerifiedOnly: q.Verified,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, searchResponse{Businesses: listings, Total: len(listings)})
}

func (s *Server) handleGetBusiness(c *gin.Context) {
	listing, err := s.directory.ResolveSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *Server) handleGetProfile(c *gin.Context) {
	listing, err := s.directory.ResolveSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile.Build(*listing, s.profile))
}

func (s *Server) writeError(c *gin.Context, err error) {
	stdErr := errors.AsStandardError(err)
	status := statusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"path":      c.FullPath(),
			"errorCode": string(stdErr.Code),
			"error":     err.Error(),
		})
	}
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	}})
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSearchCriteria:
		return http.StatusBadRequest
	case errors.ErrCodeBusinessNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDirectoryUnavailable, errors.ErrCodeDirectoryQueryFailed,
		errors.ErrCodeSearchIndexFailed, errors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeDirectoryQueryTimeout, errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
