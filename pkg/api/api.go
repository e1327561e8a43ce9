// Package api 负责将 HTTP 接口绑定到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/router"
)

// RegisterGroup 注册文档库相关的路由组到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	router.RegisterAPIRoutes(e)

	return e
}
