package routes

import (
	"civiclens/controllers"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes; limiter guards submission only
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, limiter gin.HandlerFunc) {
	api := r.Group("/api")
	{
		api.POST("/classify", ic.ClassifyIssue)
		api.POST("/geocode", ic.GeocodeLocation)
	}

	issue := api.Group("/issues")
	{
		issue.POST("", limiter, ic.CreateIssue)
		issue.GET("", ic.GetAllIssues)
		issue.GET("/stats", ic.GetIssueStats)
		issue.GET("/recent", ic.RecentIssues)
		issue.GET("/:id", ic.GetIssue)
		issue.PATCH("/:id/status", ic.UpdateIssueStatus)
		issue.DELETE("/:id", ic.DeleteIssue)
	}
}
