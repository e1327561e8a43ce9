package queue

// 主题命名规范：dv.<域>.<动作>，尽量稳定且向后兼容.
// 域：folder(文件夹)、document(文档)、sync(凭证同步)
// 动作：created/renamed/deleted/stored/moved/completed 等过去式状态

const (
	// 文件夹领域.
	TopicFolderCreated = "dv.folder.created" // 文件夹创建完成
	TopicFolderRenamed = "dv.folder.renamed" // 文件夹重命名完成
	TopicFolderDeleted = "dv.folder.deleted" // 文件夹删除完成（含级联删除的子树）

	// 文档领域.
	TopicDocumentStored  = "dv.document.stored"  // 文档写入对象存储并落库
	TopicDocumentRenamed = "dv.document.renamed" // 文档重命名完成
	TopicDocumentMoved   = "dv.document.moved"   // 文档移动到其他文件夹
	TopicDocumentDeleted = "dv.document.deleted" // 文档记录删除（blob 清理尽力而为）

	// 凭证同步领域.
	TopicSyncCompleted = "dv.sync.completed" // 一轮凭证同步结束（含统计）
	TopicSyncFailed    = "dv.sync.failed"    // 凭证同步整体失败
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 文件夹相关主题集合.
	FolderTopics = []string{
		TopicFolderCreated, TopicFolderRenamed, TopicFolderDeleted,
	}

	// 文档相关主题集合.
	DocumentTopics = []string{
		TopicDocumentStored, TopicDocumentRenamed,
		TopicDocumentMoved, TopicDocumentDeleted,
	}

	// 凭证同步相关主题集合.
	SyncTopics = []string{
		TopicSyncCompleted, TopicSyncFailed,
	}
)
