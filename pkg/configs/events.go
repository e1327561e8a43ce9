package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled  bool                 `mapstructure:"enabled"` // 总开关
	Folder   FolderEventsConfig   `mapstructure:"folder"`
	Document DocumentEventsConfig `mapstructure:"document"`
	Sync     SyncEventsConfig     `mapstructure:"sync"`
}

// FolderEventsConfig 文件夹领域的事件开关。
type FolderEventsConfig struct {
	Created bool `mapstructure:"created"`
	Renamed bool `mapstructure:"renamed"`
	Deleted bool `mapstructure:"deleted"`
}

// DocumentEventsConfig 文档领域的事件开关。
type DocumentEventsConfig struct {
	Stored  bool `mapstructure:"stored"`
	Renamed bool `mapstructure:"renamed"`
	Moved   bool `mapstructure:"moved"`
	Deleted bool `mapstructure:"deleted"`
}

// SyncEventsConfig 凭证同步领域的事件开关。
type SyncEventsConfig struct {
	Completed bool `mapstructure:"completed"`
	Failed    bool `mapstructure:"failed"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 默认仅开启最小必要集，避免噪声过大
	v.SetDefault("events.folder.created", true)
	v.SetDefault("events.folder.deleted", true)
	v.SetDefault("events.document.stored", true)
	v.SetDefault("events.document.deleted", true)
	v.SetDefault("events.sync.completed", true)
	v.SetDefault("events.sync.failed", true)

	// 可选事件：默认关闭，按需开启
	v.SetDefault("events.folder.renamed", false)
	v.SetDefault("events.document.renamed", false)
	v.SetDefault("events.document.moved", false)
}
