package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/docvault/pkg/configs"
	mqc "github.com/yeisme/docvault/pkg/internal/storage/mq"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/queue"
)

// mqPublisher 将 mq.Client 适配为 watermill message.Publisher.
type mqPublisher struct {
	client *mqc.Client
}

func (p mqPublisher) Publish(topic string, messages ...*message.Message) error {
	return p.client.Publish(context.Background(), topic, messages...)
}

func (p mqPublisher) Close() error {
	return nil
}

// publishEvent 尽力而为地发布领域事件，失败只记录日志不影响主流程.
func (s *VaultService) publishEvent(topic string, fn func(message.Publisher) error) {
	if s.pub == nil {
		return
	}

	if !eventEnabled(topic) {
		return
	}

	if err := fn(s.pub); err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
}

// eventEnabled 按配置过滤事件发布.
func eventEnabled(topic string) bool {
	ev := configs.GetConfig().Events
	if !ev.Enabled {
		return false
	}

	switch topic {
	case queue.TopicFolderCreated:
		return ev.Folder.Created
	case queue.TopicFolderRenamed:
		return ev.Folder.Renamed
	case queue.TopicFolderDeleted:
		return ev.Folder.Deleted
	case queue.TopicDocumentStored:
		return ev.Document.Stored
	case queue.TopicDocumentRenamed:
		return ev.Document.Renamed
	case queue.TopicDocumentMoved:
		return ev.Document.Moved
	case queue.TopicDocumentDeleted:
		return ev.Document.Deleted
	case queue.TopicSyncCompleted:
		return ev.Sync.Completed
	case queue.TopicSyncFailed:
		return ev.Sync.Failed
	default:
		return true
	}
}
