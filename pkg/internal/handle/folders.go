package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/log"
)

// ListFolders 返回文件夹列表.
//
//	@Summary		文件夹列表
//	@Description	不带 parent 参数时返回全部文件夹；parent=root 返回根层级，parent=<id> 返回其直接子文件夹
//	@Tags			文件夹管理
//	@Produce		json
//	@Param			parent	query		string						false	"父文件夹ID，或 root"
//	@Success		200		{object}	types.ListFoldersResponse	"文件夹列表"
//	@Failure		503		{object}	map[string]string			"存储暂时不可用"
//	@Router			/api/v1/folders [get]
func ListFolders(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	var (
		resp     *types.ListFoldersResponse
		attempts int
		err      error
	)

	switch parent := c.Query("parent"); parent {
	case "":
		resp, attempts, err = svc.ListFolders(c.Request.Context())
	case "root":
		resp, attempts, err = svc.ListChildren(c.Request.Context(), nil)
	default:
		resp, attempts, err = svc.ListChildren(c.Request.Context(), &parent)
	}

	if err != nil {
		l.Error().Err(err).Msg("failed to list folders")
		respondError(c, err)

		return
	}

	setRetryAttempts(c, attempts)
	c.JSON(http.StatusOK, resp)
}

// CreateFolder 处理创建文件夹请求.
//
//	@Summary		创建文件夹
//	@Description	创建新的文件夹，支持指定父文件夹和描述
//	@Tags			文件夹管理
//	@Accept			json
//	@Produce		json
//	@Param			folder	body		types.CreateFolderRequest	true	"创建文件夹请求"
//	@Success		201		{object}	types.FolderResponse		"文件夹信息"
//	@Failure		400		{object}	map[string]string			"请求参数错误"
//	@Failure		404		{object}	map[string]string			"父文件夹不存在"
//	@Router			/api/v1/folders [post]
func CreateFolder(c *gin.Context) {
	l := log.Logger()

	var req types.CreateFolderRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create folder request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.CreateFolder(c.Request.Context(), &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to create folder")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RenameFolder 处理重命名文件夹请求.
//
//	@Summary		重命名文件夹
//	@Description	重命名指定的文件夹，受保护文件夹拒绝重命名
//	@Tags			文件夹管理
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"文件夹ID"
//	@Param			folder	body		types.RenameFolderRequest	true	"重命名文件夹请求"
//	@Success		200		{object}	types.FolderResponse		"文件夹信息"
//	@Failure		403		{object}	map[string]string			"文件夹受保护"
//	@Failure		404		{object}	map[string]string			"文件夹不存在"
//	@Router			/api/v1/folders/{id} [put]
func RenameFolder(c *gin.Context) {
	l := log.Logger()

	var req types.RenameFolderRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid rename folder request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.RenameFolder(c.Request.Context(), c.Param("id"), req.NewName)
	if err != nil {
		l.Error().Err(err).Str("folder_id", c.Param("id")).Msg("failed to rename folder")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteFolder 处理删除文件夹请求.
//
//	@Summary		删除文件夹
//	@Description	级联删除文件夹及其整个子树，受保护文件夹拒绝删除
//	@Tags			文件夹管理
//	@Produce		json
//	@Param			id	path		string						true	"文件夹ID"
//	@Success		200	{object}	types.DeleteFolderResponse	"删除统计"
//	@Failure		403	{object}	map[string]string			"文件夹受保护"
//	@Failure		404	{object}	map[string]string			"文件夹不存在"
//	@Router			/api/v1/folders/{id} [delete]
func DeleteFolder(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.DeleteFolder(c.Request.Context(), c.Param("id"))
	if err != nil {
		l.Error().Err(err).Str("folder_id", c.Param("id")).Msg("failed to delete folder")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFolderPath 返回根到目标文件夹的路径.
//
//	@Summary		文件夹路径
//	@Description	返回从根层级到目标文件夹的祖先链
//	@Tags			文件夹管理
//	@Produce		json
//	@Param			id	path		string						true	"文件夹ID"
//	@Success		200	{object}	types.FolderPathResponse	"路径"
//	@Failure		404	{object}	map[string]string			"文件夹不存在"
//	@Router			/api/v1/folders/{id}/path [get]
func GetFolderPath(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, attempts, err := svc.GetFolderPath(c.Request.Context(), c.Param("id"))
	if err != nil {
		l.Error().Err(err).Str("folder_id", c.Param("id")).Msg("failed to resolve folder path")
		respondError(c, err)

		return
	}

	setRetryAttempts(c, attempts)
	c.JSON(http.StatusOK, resp)
}

// GetFolderStats 返回文件夹子树统计.
//
//	@Summary		文件夹统计
//	@Description	返回文件夹子树的文件夹数、文档数与总字节数
//	@Tags			文件夹管理
//	@Produce		json
//	@Param			id	path		string						true	"文件夹ID"
//	@Success		200	{object}	types.FolderStatsResponse	"统计"
//	@Failure		404	{object}	map[string]string			"文件夹不存在"
//	@Router			/api/v1/folders/{id}/stats [get]
func GetFolderStats(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, attempts, err := svc.GetFolderStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		l.Error().Err(err).Str("folder_id", c.Param("id")).Msg("failed to compute folder stats")
		respondError(c, err)

		return
	}

	setRetryAttempts(c, attempts)
	c.JSON(http.StatusOK, resp)
}
