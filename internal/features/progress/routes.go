package progress

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches progress endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authed []gin.HandlerFunc) {
	prog := router.Group("/progress")

	prog.GET("", append(authed, handler.GetAllProgress)...)
	prog.GET("/courses/:courseId", append(authed, handler.GetCourseProgress)...)
	prog.POST("/courses/:courseId/lessons/:lessonId", append(authed, handler.SetCompletion)...)

	router.GET("/leaderboard", append(authed, handler.Leaderboard)...)
}
