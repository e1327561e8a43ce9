package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/handle"
	"github.com/yeisme/docvault/pkg/middleware"
)

// RegisterFolderRoutes 注册文件夹相关路由.
func RegisterFolderRoutes(g *gin.RouterGroup) {
	folderRoutes := g.Group("/folders")
	{
		folderRoutes.GET("", handle.ListFolders)
		folderRoutes.POST("", handle.CreateFolder)

		singleGroup := folderRoutes.Group("/:id")
		{
			singleGroup.PUT("", handle.RenameFolder)
			singleGroup.DELETE("", handle.DeleteFolder)
			singleGroup.GET("/path", handle.GetFolderPath)
			singleGroup.GET("/stats", handle.GetFolderStats)
		}
	}
}

// RegisterDocumentRoutes 注册文档相关路由.
func RegisterDocumentRoutes(g *gin.RouterGroup) {
	documentRoutes := g.Group("/documents")
	{
		documentRoutes.GET("", handle.ListDocuments)
		documentRoutes.POST("", handle.UploadDocument)
		// 简历上传走独立入口，仅接受 PDF
		documentRoutes.POST("/cv", handle.UploadCV)

		singleGroup := documentRoutes.Group("/:id")
		{
			singleGroup.PUT("", handle.RenameDocument)
			singleGroup.DELETE("", handle.DeleteDocument)
			singleGroup.PUT("/move", handle.MoveDocument)
			singleGroup.GET("/download", handle.DownloadDocument)
		}
	}
}

// RegisterOperationRoutes 注册批量操作路由.
func RegisterOperationRoutes(g *gin.RouterGroup) {
	operationRoutes := g.Group("/operations")
	{
		operationRoutes.POST("/delete", handle.BulkDelete)
		operationRoutes.POST("/download", handle.BulkDownload)
	}
}

// RegisterDiplomaRoutes 注册凭证相关路由.
func RegisterDiplomaRoutes(g *gin.RouterGroup) {
	g.GET("/diplomas", handle.ListDiplomas)
	// 手动触发同步需要管理员角色
	g.POST("/sync/diplomas", middleware.RequireMinRole(middleware.RoleAdmin), handle.SyncDiplomas)
}
