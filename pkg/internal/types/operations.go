package types

// ItemKind 批量操作项的类型.
type ItemKind string

const (
	ItemKindFolder   ItemKind = "folder"
	ItemKindDocument ItemKind = "document"
)

// ItemRef 批量操作中的目标项.
type ItemRef struct {
	Kind ItemKind `binding:"required,oneof=folder document" json:"kind"`
	ID   string   `binding:"required"                       json:"id"`
}

// BulkRequest 批量操作请求.
type BulkRequest struct {
	Items []ItemRef `binding:"required,min=1,dive" json:"items"`
}

// ItemFailure 批量操作中单项失败详情.
type ItemFailure struct {
	Item  ItemRef `json:"item"`
	Error string  `json:"error"`
}

// BulkDeleteResponse 批量删除响应.
type BulkDeleteResponse struct {
	Succeeded []ItemRef     `json:"succeeded"`
	Failed    []ItemFailure `json:"failed"`
}

// BulkDownloadLink 批量下载中单个文档的链接.
type BulkDownloadLink struct {
	Item ItemRef `json:"item"`
	URL  string  `json:"url"`
}

// BulkDownloadResponse 批量下载响应.
type BulkDownloadResponse struct {
	Succeeded []BulkDownloadLink `json:"succeeded"`
	Failed    []ItemFailure      `json:"failed"`
	ExpiresIn int                `json:"expires_in"` // 秒
}
