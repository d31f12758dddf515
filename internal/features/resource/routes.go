package resource

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches resource endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authed, adminOnly []gin.HandlerFunc) {
	resources := router.Group("/courses/:courseId/resources")

	resources.GET("", append(authed, handler.List)...)
	resources.POST("", append(adminOnly, handler.Create)...)
	resources.DELETE("/:resourceId", append(adminOnly, handler.Delete)...)
}
