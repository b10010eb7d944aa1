package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// RequireRole enforces the role and KYC gate on a route group. A denied
// request gets the redirect target both in the body and in Location.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := usecase.Decide(CurrentUser(c), roles...)
		if decision.Allowed() {
			c.Next()
			return
		}

		msg := "access denied"
		if decision.Status == http.StatusUnauthorized {
			msg = "authentication required"
		}
		c.Header("Location", decision.Redirect)
		c.AbortWithStatusJSON(decision.Status, gin.H{"error": msg, "redirect": decision.Redirect})
	}
}

// AdminOnly rejects every non-admin user. The role gate lets approved
// customers through regardless of the role list, so admin route groups
// add this check behind RequireRole.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := CurrentUser(c); user != nil && user.IsAdmin() {
			c.Next()
			return
		}
		c.Header("Location", usecase.PathForbidden)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied", "redirect": usecase.PathForbidden})
	}
}
