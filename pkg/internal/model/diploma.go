package model

import (
	"time"
)

// Diploma 外部凭证记录，由其他系统维护，本服务只读.
type Diploma struct {
	ID     string    `gorm:"primaryKey;size:26" json:"id"`
	Name   string    `gorm:"size:512"           json:"name"`
	Date   time.Time `gorm:"index"              json:"date"`
	Issuer string    `gorm:"size:512"           json:"issuer"`

	Files []DiplomaFile `gorm:"foreignKey:DiplomaID" json:"files"`
}

// DiplomaFile 凭证附带的扫描件，指向对象存储中的 blob.
type DiplomaFile struct {
	ID        string `gorm:"primaryKey;size:26" json:"id"`
	DiplomaID string `gorm:"size:26;index"      json:"diploma_id"`
	// OriginalName 上传时的原始文件名
	OriginalName string `gorm:"size:512" json:"original_name"`
	// Filename 存储文件名，同步时用于去重
	Filename string `gorm:"size:512" json:"filename"`
	// FilePath 对象存储中的对象键
	FilePath string `gorm:"size:1024" json:"file_path"`
	FileSize int64  `json:"file_size"`
	FileType string `gorm:"size:255" json:"file_type"`
	// UploadDate 附件在外部系统中的上传时间
	UploadDate time.Time `json:"upload_date"`
}

// TableName 指定表名.
func (Diploma) TableName() string {
	return "diplomas"
}

// TableName 指定表名.
func (DiplomaFile) TableName() string {
	return "diploma_files"
}
