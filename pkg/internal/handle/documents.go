package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/log"
)

// ListDocuments 返回某一层级下的文档.
//
//	@Summary		文档列表
//	@Description	按文件夹层级列出文档，folder_id 为空时返回根层级
//	@Tags			文档管理
//	@Produce		json
//	@Param			folder_id	query		string						false	"文件夹ID"
//	@Success		200			{object}	types.ListDocumentsResponse	"文档列表"
//	@Failure		503			{object}	map[string]string			"存储暂时不可用"
//	@Router			/api/v1/documents [get]
func ListDocuments(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	var folderID *string
	if v := c.Query("folder_id"); v != "" {
		folderID = &v
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, attempts, err := svc.ListDocuments(c.Request.Context(), folderID)
	if err != nil {
		l.Error().Err(err).Msg("failed to list documents")
		respondError(c, err)

		return
	}

	setRetryAttempts(c, attempts)
	c.JSON(http.StatusOK, resp)
}

// RenameDocument 处理重命名文档请求.
//
//	@Summary		重命名文档
//	@Description	重命名指定文档，受保护文档拒绝重命名
//	@Tags			文档管理
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string						true	"文档ID"
//	@Param			document	body		types.RenameDocumentRequest	true	"重命名文档请求"
//	@Success		200			{object}	types.DocumentResponse		"文档信息"
//	@Failure		403			{object}	map[string]string			"文档受保护"
//	@Failure		404			{object}	map[string]string			"文档不存在"
//	@Router			/api/v1/documents/{id} [put]
func RenameDocument(c *gin.Context) {
	l := log.Logger()

	var req types.RenameDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid rename document request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.RenameDocument(c.Request.Context(), c.Param("id"), req.NewName)
	if err != nil {
		l.Error().Err(err).Str("document_id", c.Param("id")).Msg("failed to rename document")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// MoveDocument 处理移动文档请求.
//
//	@Summary		移动文档
//	@Description	将文档移动到目标文件夹，folder_id 为空表示移到根层级
//	@Tags			文档管理
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string						true	"文档ID"
//	@Param			document	body		types.MoveDocumentRequest	true	"移动文档请求"
//	@Success		200			{object}	types.DocumentResponse		"文档信息"
//	@Failure		403			{object}	map[string]string			"文档受保护"
//	@Failure		404			{object}	map[string]string			"文档或目标文件夹不存在"
//	@Router			/api/v1/documents/{id}/move [put]
func MoveDocument(c *gin.Context) {
	l := log.Logger()

	var req types.MoveDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid move document request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.MoveDocument(c.Request.Context(), c.Param("id"), req.FolderID)
	if err != nil {
		l.Error().Err(err).Str("document_id", c.Param("id")).Msg("failed to move document")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteDocument 处理删除文档请求.
//
//	@Summary		删除文档
//	@Description	删除文档记录并尽力清理对象存储，受保护文档拒绝删除
//	@Tags			文档管理
//	@Produce		json
//	@Param			id	path		string							true	"文档ID"
//	@Success		200	{object}	types.DeleteDocumentResponse	"删除结果"
//	@Failure		403	{object}	map[string]string				"文档受保护"
//	@Failure		404	{object}	map[string]string				"文档不存在"
//	@Router			/api/v1/documents/{id} [delete]
func DeleteDocument(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.DeleteDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		l.Error().Err(err).Str("document_id", c.Param("id")).Msg("failed to delete document")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadDocument 生成文档的预签名下载链接.
//
//	@Summary		下载文档
//	@Description	返回带过期时间的预签名下载 URL
//	@Tags			文档管理
//	@Produce		json
//	@Param			id	path		string							true	"文档ID"
//	@Success		200	{object}	types.DownloadDocumentResponse	"下载链接"
//	@Failure		404	{object}	map[string]string				"文档不存在"
//	@Router			/api/v1/documents/{id}/download [get]
func DownloadDocument(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.DownloadDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		l.Error().Err(err).Str("document_id", c.Param("id")).Msg("failed to presign document download")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
