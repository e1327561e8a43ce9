package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/service"
	"github.com/yeisme/docvault/pkg/log"
)

// ListDiplomas 返回外部凭证系统中的全部凭证.
//
//	@Summary		凭证列表
//	@Description	只读列出凭证及其附件
//	@Tags			凭证同步
//	@Produce		json
//	@Success		200	{object}	types.ListDiplomasResponse	"凭证列表"
//	@Failure		503	{object}	map[string]string			"存储暂时不可用"
//	@Router			/api/v1/diplomas [get]
func ListDiplomas(c *gin.Context) {
	l := log.Logger()

	if _, ok := requireUser(c); !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, attempts, err := svc.ListDiplomas(c.Request.Context())
	if err != nil {
		l.Error().Err(err).Msg("failed to list diplomas")
		respondError(c, err)

		return
	}

	setRetryAttempts(c, attempts)
	c.JSON(http.StatusOK, resp)
}

// SyncDiplomas 手动触发凭证同步.
//
//	@Summary		同步凭证
//	@Description	将凭证镜像为受保护的文件夹与文档，幂等可重入
//	@Tags			凭证同步
//	@Produce		json
//	@Success		200	{object}	types.SyncDiplomasResponse	"同步统计"
//	@Failure		503	{object}	map[string]string			"存储暂时不可用"
//	@Router			/api/v1/sync/diplomas [post]
func SyncDiplomas(c *gin.Context) {
	l := log.Logger()

	user, ok := requireUser(c)
	if !ok {
		return
	}

	svc := service.NewVaultService(c.Request.Context())

	resp, err := svc.SyncDiplomas(c.Request.Context(), "api")
	if err != nil {
		l.Error().Err(err).Str("user", user).Msg("failed to sync diplomas")
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
