package lesson

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches lesson endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authed, adminOnly []gin.HandlerFunc) {
	lessons := router.Group("/courses/:courseId/lessons")

	lessons.GET("", append(authed, handler.List)...)
	lessons.GET("/:lessonId", append(authed, handler.GetByID)...)
	lessons.POST("", append(adminOnly, handler.Create)...)
	lessons.PUT("/:lessonId", append(adminOnly, handler.Update)...)
	lessons.PUT("/:lessonId/reorder", append(adminOnly, handler.Reorder)...)
	lessons.DELETE("/:lessonId", append(adminOnly, handler.Delete)...)
}
