package model

import (
	"time"
)

// Document 文档模型，记录对象存储中 blob 的元数据.
type Document struct {
	ID string `gorm:"primaryKey;size:26" json:"id"`
	// Name 展示名称，可被重命名修改
	Name string `gorm:"size:512;index" json:"name"`
	// OriginalName 上传时的原始文件名
	OriginalName string `gorm:"size:512" json:"original_name"`
	// Filename 存储用的唯一文件名（含时间戳后缀）
	Filename string `gorm:"size:512;index:idx_doc_folder_filename" json:"filename"`
	// FilePath 对象存储中的对象键
	FilePath string `gorm:"size:1024" json:"file_path"`
	FileSize int64  `gorm:"index"     json:"file_size"`
	// FileType MIME 类型
	FileType string `gorm:"size:255" json:"file_type"`
	ETag     string `gorm:"size:64"  json:"etag"`
	// FolderID 为 nil 表示根层级文档
	FolderID *string `gorm:"size:26;index;index:idx_doc_folder_filename" json:"folder_id"`
	// IsProtected 锁定文档，拒绝重命名与删除
	IsProtected bool      `json:"is_protected"`
	UploadDate  time.Time `gorm:"index" json:"upload_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名.
func (Document) TableName() string {
	return "documents"
}
