package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishFolderCreated 发布 dv.folder.created 事件.
func PublishFolderCreated(pub message.Publisher, payload FolderCreatedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFolderCreated, payload, opts...)
}

// PublishFolderRenamed 发布 dv.folder.renamed 事件.
func PublishFolderRenamed(pub message.Publisher, payload FolderRenamedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFolderRenamed, payload, opts...)
}

// PublishFolderDeleted 发布 dv.folder.deleted 事件.
func PublishFolderDeleted(pub message.Publisher, payload FolderDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicFolderDeleted, payload, opts...)
}

// PublishDocumentStored 发布 dv.document.stored 事件.
// 用于文档写入对象存储并同步元数据到数据库后，通知下游流程.
func PublishDocumentStored(pub message.Publisher, payload DocumentStoredPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicDocumentStored, payload, opts...)
}

// PublishDocumentRenamed 发布 dv.document.renamed 事件.
func PublishDocumentRenamed(pub message.Publisher, payload DocumentRenamedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicDocumentRenamed, payload, opts...)
}

// PublishDocumentMoved 发布 dv.document.moved 事件.
func PublishDocumentMoved(pub message.Publisher, payload DocumentMovedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicDocumentMoved, payload, opts...)
}

// PublishDocumentDeleted 发布 dv.document.deleted 事件.
func PublishDocumentDeleted(pub message.Publisher, payload DocumentDeletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicDocumentDeleted, payload, opts...)
}

// PublishSyncCompleted 发布 dv.sync.completed 事件.
func PublishSyncCompleted(pub message.Publisher, payload SyncCompletedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicSyncCompleted, payload, opts...)
}

// PublishSyncFailed 发布 dv.sync.failed 事件.
func PublishSyncFailed(pub message.Publisher, payload SyncFailedPayload, opts ...func(*EventHeader)) error {
	return publish(pub, TopicSyncFailed, payload, opts...)
}

// ParseDocumentStored 将 Watermill 消息解析为强类型 Envelope（DocumentStoredPayload）.
func ParseDocumentStored(msg *message.Message) (Message[DocumentStoredPayload], error) {
	return ParseWatermillMessage[DocumentStoredPayload](msg)
}

// ParseSyncCompleted 将 Watermill 消息解析为强类型 Envelope（SyncCompletedPayload）.
func ParseSyncCompleted(msg *message.Message) (Message[SyncCompletedPayload], error) {
	return ParseWatermillMessage[SyncCompletedPayload](msg)
}

func publish[T any](pub message.Publisher, topic string, payload T, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}
