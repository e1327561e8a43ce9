package types

// CreateFolderRequest 创建文件夹请求.
type CreateFolderRequest struct {
	Name        string  `binding:"required"           json:"name"` // 文件夹名称
	ParentID    *string `json:"parent_id,omitempty"`               // 父文件夹 ID（可选，空为根层级）
	Description string  `json:"description,omitempty"`             // 文件夹描述
}

// FolderResponse 文件夹信息.
type FolderResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	IsNative    bool    `json:"is_native"`
	IsSecure    bool    `json:"is_secure"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ListFoldersResponse 文件夹列表响应.
type ListFoldersResponse struct {
	Folders []FolderResponse `json:"folders"`
	Total   int              `json:"total"`
}

// RenameFolderRequest 重命名文件夹请求.
type RenameFolderRequest struct {
	NewName string `binding:"required" json:"new_name"` // 新文件夹名称
}

// DeleteFolderResponse 删除文件夹响应，含级联统计.
type DeleteFolderResponse struct {
	FolderID         string `json:"folder_id"`
	Name             string `json:"name"`
	FoldersRemoved   int    `json:"folders_removed"`
	DocumentsRemoved int    `json:"documents_removed"`
}

// FolderPathResponse 从根到目标文件夹的路径.
type FolderPathResponse struct {
	FolderID string           `json:"folder_id"`
	Path     []FolderResponse `json:"path"`
}

// FolderStatsResponse 文件夹子树统计.
type FolderStatsResponse struct {
	FolderID       string `json:"folder_id"`
	SubfolderCount int    `json:"subfolder_count"`
	DocumentCount  int    `json:"document_count"`
	TotalSize      int64  `json:"total_size"`
}
