package model

import (
	"time"
)

// Folder 文件夹模型，parent_id 为空表示根层级.
type Folder struct {
	ID          string `gorm:"primaryKey;size:26"                       json:"id"`
	Name        string `gorm:"size:255;index:idx_folder_parent_name"    json:"name"`
	Description string `gorm:"type:text"                                json:"description"`
	// ParentID 为 nil 表示根层级文件夹
	ParentID *string `gorm:"size:26;index;index:idx_folder_parent_name" json:"parent_id"`
	// IsNative 标记系统预置容器（如 Documents / Diplomas），不可删除
	IsNative bool `gorm:"index" json:"is_native"`
	// IsSecure 锁定文件夹，拒绝重命名与删除
	IsSecure  bool      `json:"is_secure"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名.
func (Folder) TableName() string {
	return "folders"
}
