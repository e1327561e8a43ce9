package types

// DocumentResponse 文档信息.
type DocumentResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name,omitempty"`
	Filename     string  `json:"filename"`
	FileSize     int64   `json:"file_size"`
	FileType     string  `json:"file_type"`
	FolderID     *string `json:"folder_id,omitempty"`
	IsProtected  bool    `json:"is_protected"`
	UploadDate   string  `json:"upload_date"`
}

// ListDocumentsResponse 文档列表响应.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
}

// RenameDocumentRequest 重命名文档请求.
type RenameDocumentRequest struct {
	NewName string `binding:"required" json:"new_name"` // 新文档名称
}

// MoveDocumentRequest 移动文档请求.
type MoveDocumentRequest struct {
	FolderID *string `json:"folder_id"` // 目标文件夹 ID，空为根层级
}

// DeleteDocumentResponse 删除文档响应.
type DeleteDocumentResponse struct {
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
	// BlobRemoved 指示对象存储中的 blob 是否成功清理
	BlobRemoved bool `json:"blob_removed"`
}

// DownloadDocumentResponse 文档下载链接.
type DownloadDocumentResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	ExpiresIn  int    `json:"expires_in"` // 秒
}
