package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/middleware"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// requireSession returns the resolved session or answers 401.
func requireSession(c *gin.Context) (*model.Session, bool) {
	session := middleware.CurrentSession(c)
	if session == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required", "redirect": usecase.PathLogin})
		return nil, false
	}
	return session, true
}

func requireUser(c *gin.Context) (*model.User, bool) {
	session, ok := requireSession(c)
	if !ok {
		return nil, false
	}
	return &session.User, true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return false
	}
	return true
}
