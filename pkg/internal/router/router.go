// Package router 管理路由配置，用于设置HTTP服务的路由.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 将全部业务路由挂到 /api/v1 下.
func RegisterAPIRoutes(e *gin.Engine) {
	api := e.Group("/api/v1")
	{
		RegisterFolderRoutes(api)
		RegisterDocumentRoutes(api)
		RegisterOperationRoutes(api)
		RegisterDiplomaRoutes(api)
		RegisterHealthCheckRoute(api)
		RegisterSchedulerRoutes(api)
	}
}
