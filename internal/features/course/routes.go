package course

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches course endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authed, adminOnly []gin.HandlerFunc) {
	courses := router.Group("/courses")

	courses.GET("", append(authed, handler.List)...)
	courses.GET("/:courseId", append(authed, handler.GetByID)...)
	courses.POST("", append(adminOnly, handler.Create)...)
	courses.PUT("/:courseId", append(adminOnly, handler.Update)...)
}
