// Package handle 提供 HTTP 请求处理器的实现.
package handle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/rule"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// checkUser 提取并校验请求用户：oauth2-proxy 注入的 Header 优先 -> query 参数 ->
// 非 Release 模式下的测试默认值.
func checkUser(c *gin.Context) (string, error) {
	user := c.GetHeader("X-Auth-Request-Email")
	if user == "" {
		user = c.GetHeader("X-Forwarded-Email")
	}

	if user == "" {
		user = c.Query("user")
	}

	if user == "" && gin.Mode() != gin.ReleaseMode {
		user = "test-user@example.com"
	}

	user = strings.TrimSpace(user)

	// 使用 validator 验证用户名格式为 email
	if err := rule.ValidateVar(user, "required,email"); err != nil {
		return "", errors.Join(types.ErrUnauthorized, err)
	}

	return user, nil
}

// statusFromError 把领域错误映射为 HTTP 状态码.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError 统一的错误响应.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

// setRetryAttempts 读操作经历了重试时，将总尝试次数回传给调用方.
func setRetryAttempts(c *gin.Context, attempts int) {
	if attempts > 1 {
		c.Header("X-Retry-Attempts", strconv.Itoa(attempts))
	}
}

// requireUser 校验用户身份，失败时直接写出 401 响应.
func requireUser(c *gin.Context) (string, bool) {
	user, err := checkUser(c)
	if err != nil {
		respondError(c, err)

		return "", false
	}

	return user, true
}
