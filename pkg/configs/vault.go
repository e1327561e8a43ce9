package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultCacheTTLSeconds  = 300              // 列表缓存有效期（秒），即 5 分钟
	DefaultReadRetries      = 2                // 读操作额外重试次数
	DefaultRetryBackoffMS   = 200              // 重试退避基数（毫秒），线性递增
	DefaultMaxUploadBytes   = 50 * 1024 * 1024 // 上传大小上限（50 MiB）
	DefaultDocumentsFolder  = "Documents"      // 原生文档容器名称
	DefaultDiplomasFolder   = "Diplomas"       // 原生文凭容器名称
	DefaultDiplomaSyncCron  = "10 3 * * *"     // 每天 03:10 执行文凭同步
	DefaultPresignedExpiry  = 900              // 预签名下载 URL 有效期（秒）
	DefaultCVContentType    = "application/pdf"
	DefaultDiplomaDateStyle = "02/01/2006" // 文凭文件夹名中的日期格式（DD/MM/YYYY）
)

// VaultConfig 文档库业务配置：缓存、重试、上传限制与文凭同步.
type VaultConfig struct {
	CacheTTLSeconds  int      `mapstructure:"cache_ttl_seconds"  rule:"min=1"`
	ReadRetries      int      `mapstructure:"read_retries"       rule:"min=0,max=10"`
	RetryBackoffMS   int      `mapstructure:"retry_backoff_ms"   rule:"min=1"`
	MaxUploadBytes   int64    `mapstructure:"max_upload_bytes"   rule:"min=1"`
	CVContentTypes   []string `mapstructure:"cv_content_types"`
	DocumentsFolder  string   `mapstructure:"documents_folder"   rule:"required"`
	DiplomasFolder   string   `mapstructure:"diplomas_folder"    rule:"required"`
	DiplomaSyncCron  string   `mapstructure:"diploma_sync_cron"`
	PresignedExpiry  int      `mapstructure:"presigned_expiry_s" rule:"min=1"`
	DiplomaDateStyle string   `mapstructure:"diploma_date_style"`
}

// GetCacheTTL 返回列表缓存 TTL.
func (c *VaultConfig) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// GetRetryBackoff 返回重试退避基数.
func (c *VaultConfig) GetRetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// GetPresignedExpiry 返回预签名 URL 有效期.
func (c *VaultConfig) GetPresignedExpiry() time.Duration {
	return time.Duration(c.PresignedExpiry) * time.Second
}

// IsCVContentType 判断内容类型是否允许作为简历上传.
func (c *VaultConfig) IsCVContentType(contentType string) bool {
	for _, allowed := range c.CVContentTypes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}

	return false
}

// setDefaults 设置业务配置的默认值.
func (c *VaultConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("vault.cache_ttl_seconds", DefaultCacheTTLSeconds)
	v.SetDefault("vault.read_retries", DefaultReadRetries)
	v.SetDefault("vault.retry_backoff_ms", DefaultRetryBackoffMS)
	v.SetDefault("vault.max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("vault.cv_content_types", []string{DefaultCVContentType})
	v.SetDefault("vault.documents_folder", DefaultDocumentsFolder)
	v.SetDefault("vault.diplomas_folder", DefaultDiplomasFolder)
	v.SetDefault("vault.diploma_sync_cron", DefaultDiplomaSyncCron)
	v.SetDefault("vault.presigned_expiry_s", DefaultPresignedExpiry)
	v.SetDefault("vault.diploma_date_style", DefaultDiplomaDateStyle)
}
