package types

// UploadDocumentRequest 上传文档的表单字段（文件本体走 multipart）.
type UploadDocumentRequest struct {
	FolderID    *string `form:"folder_id"   json:"folder_id,omitempty"` // 目标文件夹 ID（可选，空为根层级）
	Name        string  `form:"name"        json:"name,omitempty"`      // 展示名称（可选，默认原始文件名）
	IsProtected bool    `form:"is_protected" json:"is_protected,omitempty"`
}

// UploadDocumentResponse 上传文档响应.
type UploadDocumentResponse struct {
	Document DocumentResponse `json:"document"`
	ETag     string           `json:"etag,omitempty"`
}
