package types

import "errors"

// 业务错误分类，service 层统一返回，handle 层映射为 HTTP 状态码.
var (
	// ErrInvalidInput 请求参数不合法.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden 目标被保护，拒绝操作.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound 目标不存在.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized 缺少有效的用户身份.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransient 依赖暂时不可用，可重试.
	ErrTransient = errors.New("transient failure")
	// ErrInconsistent 数据处于不一致状态（如文件夹树成环）.
	ErrInconsistent = errors.New("inconsistent state")
)
