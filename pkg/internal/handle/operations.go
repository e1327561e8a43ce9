package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/log"
)

// BulkDelete 处理批量删除请求.
//
//	@Summary		批量删除
//	@Description	批量删除文件夹与文档的混合选集，单项失败不影响其余项
//	@Tags			批量操作
//	@Accept			json
//	@Produce		json
//	@Param			items	body		types.BulkRequest			true	"批量删除请求"
//	@Success		200		{object}	types.BulkDeleteResponse	"逐项结果"
//	@Failure		400		{object}	map[string]string			"选集为空或格式错误"
//	@Router			/api/v1/operations/delete [post]
func BulkDelete(c *gin.Context) {
	l := log.Logger()

	var req types.BulkRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid bulk delete request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.BulkDelete(c.Request.Context(), &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to run bulk delete")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// BulkDownload 处理批量下载请求.
//
//	@Summary		批量下载
//	@Description	为选集中的每个文档生成预签名下载链接，文件夹项直接记为失败
//	@Tags			批量操作
//	@Accept			json
//	@Produce		json
//	@Param			items	body		types.BulkRequest			true	"批量下载请求"
//	@Success		200		{object}	types.BulkDownloadResponse	"逐项链接"
//	@Failure		400		{object}	map[string]string			"选集为空或格式错误"
//	@Router			/api/v1/operations/download [post]
func BulkDownload(c *gin.Context) {
	l := log.Logger()

	var req types.BulkRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid bulk download request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.BulkDownload(c.Request.Context(), &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to run bulk download")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
