package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 文件夹领域 --------------------------

// FolderRef 标识一个文件夹.
type FolderRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// FolderCreatedPayload 文件夹创建完成.
type FolderCreatedPayload struct {
	Folder FolderRef `json:"folder"`
	// Source 触发来源，如 api / sync.
	Source string `json:"source,omitempty"`
}

// FolderRenamedPayload 文件夹重命名完成.
type FolderRenamedPayload struct {
	Folder  FolderRef `json:"folder"`
	OldName string    `json:"old_name"`
}

// FolderDeletedPayload 文件夹删除完成，含级联统计.
type FolderDeletedPayload struct {
	Folder           FolderRef `json:"folder"`
	FoldersRemoved   int       `json:"folders_removed"`
	DocumentsRemoved int       `json:"documents_removed"`
}

// -------------------------- 文档领域 --------------------------

// DocumentRef 标识一个文档及其存储位置.
type DocumentRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FolderID    string `json:"folder_id,omitempty"`
	ObjectKey   string `json:"object_key,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	ETag        string `json:"etag,omitempty"`
}

// DocumentStoredPayload 文档写入对象存储并落库.
type DocumentStoredPayload struct {
	Document DocumentRef `json:"document"`
	// Source 触发来源，如 upload / cv / sync.
	Source string `json:"source,omitempty"`
}

// DocumentRenamedPayload 文档重命名完成.
type DocumentRenamedPayload struct {
	Document DocumentRef `json:"document"`
	OldName  string      `json:"old_name"`
}

// DocumentMovedPayload 文档移动到其他文件夹.
type DocumentMovedPayload struct {
	Document    DocumentRef `json:"document"`
	OldFolderID string      `json:"old_folder_id,omitempty"`
}

// DocumentDeletedPayload 文档记录删除.
type DocumentDeletedPayload struct {
	Document DocumentRef `json:"document"`
	// BlobRemoved 指示对象存储中的 blob 是否成功清理.
	BlobRemoved bool `json:"blob_removed"`
}

// -------------------------- 凭证同步领域 --------------------------

// SyncCompletedPayload 一轮凭证同步结束的统计结果.
type SyncCompletedPayload struct {
	FoldersCreated   int    `json:"folders_created"`
	DocumentsCreated int    `json:"documents_created"`
	Skipped          int    `json:"skipped"`
	Trigger          string `json:"trigger,omitempty"` // api / cron
}

// SyncFailedPayload 凭证同步整体失败.
type SyncFailedPayload struct {
	Error   string `json:"error"`
	Trigger string `json:"trigger,omitempty"`
}
