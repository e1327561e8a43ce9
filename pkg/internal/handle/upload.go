package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/log"
)

// UploadDocument 处理文档上传.
//
//	@Summary		上传文档
//	@Description	上传单个文档到指定文件夹，同名文件自动加时间戳后缀
//	@Tags			文档上传
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file			formData	file						true	"上传的文件"
//	@Param			folder_id		formData	string						false	"目标文件夹ID"
//	@Param			name			formData	string						false	"展示名称"
//	@Param			is_protected	formData	bool						false	"是否受保护"
//	@Success		201				{object}	types.UploadDocumentResponse	"上传结果"
//	@Failure		400				{object}	map[string]string				"文件为空或超出大小限制"
//	@Failure		404				{object}	map[string]string				"目标文件夹不存在"
//	@Router			/api/v1/documents [post]
func UploadDocument(c *gin.Context) {
	l := log.Logger()

	file, err := c.FormFile("file")
	if err != nil {
		l.Warn().Err(err).Msg("failed to get uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	var req types.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid upload form fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})

		return
	}

	src, err := file.Open()
	if err != nil {
		l.Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process file"})

		return
	}
	defer src.Close()

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.UploadDocument(c.Request.Context(), &req,
		file.Filename, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		l.Error().Err(err).Str("filename", file.Filename).Msg("failed to upload document")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UploadCV 处理简历上传.
//
//	@Summary		上传简历
//	@Description	上传简历（仅 PDF），落在系统预置的文档容器中
//	@Tags			文档上传
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file							true	"简历文件"
//	@Success		201		{object}	types.UploadDocumentResponse	"上传结果"
//	@Failure		400		{object}	map[string]string				"文件为空或不是 PDF"
//	@Router			/api/v1/documents/cv [post]
func UploadCV(c *gin.Context) {
	l := log.Logger()

	file, err := c.FormFile("file")
	if err != nil {
		l.Warn().Err(err).Msg("failed to get uploaded cv")
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})

		return
	}

	if _, ok := requireUser(c); !ok {
		return
	}

	src, err := file.Open()
	if err != nil {
		l.Error().Err(err).Msg("failed to open uploaded cv")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process file"})

		return
	}
	defer src.Close()

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.UploadCV(c.Request.Context(),
		file.Filename, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		l.Error().Err(err).Str("filename", file.Filename).Msg("failed to upload cv")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}
