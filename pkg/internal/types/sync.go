package types

// DiplomaFileResponse 凭证附件信息.
type DiplomaFileResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	FileSize int64  `json:"file_size"`
	FileType string `json:"file_type"`
}

// DiplomaResponse 凭证信息.
type DiplomaResponse struct {
	ID     string                `json:"id"`
	Name   string                `json:"name"`
	Date   string                `json:"date"`
	Issuer string                `json:"issuer,omitempty"`
	Files  []DiplomaFileResponse `json:"files"`
}

// ListDiplomasResponse 凭证列表响应.
type ListDiplomasResponse struct {
	Diplomas []DiplomaResponse `json:"diplomas"`
	Total    int               `json:"total"`
}

// SyncDiplomasResponse 凭证同步结果统计.
type SyncDiplomasResponse struct {
	FoldersCreated   int `json:"folders_created"`
	DocumentsCreated int `json:"documents_created"`
	Skipped          int `json:"skipped"`
}
