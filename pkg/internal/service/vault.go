// Package service 实现文件夹、文档与凭证同步的业务逻辑.
package service

import (
	"context"
	crand "crypto/rand"
	"io"
	"net/url"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	minio "github.com/minio/minio-go/v7"
	"github.com/oklog/ulid"
	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/configs"
	ctxPkg "github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/model"
)

// 缓存键约定：folders 覆盖整棵文件夹列表，documents_<folder_id> 与
// documents_root 覆盖按层级的文档列表.
const (
	cacheKeyFolders       = "folders"
	cacheKeyDocumentsRoot = "documents_root"
	cacheKeyDocumentsPfx  = "documents_"
)

var ulidEntropy = ulid.Monotonic(crand.Reader, 0)

// BlobStore 抽象对象存储操作，便于测试替换.
type BlobStore interface {
	Put(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (minio.UploadInfo, error)
	Remove(ctx context.Context, objectPath string) error
	PresignGet(ctx context.Context, objectPath string, expiry time.Duration, downloadName string) (*url.URL, error)
}

// VaultService 文档库核心服务.
type VaultService struct {
	db    *gorm.DB
	blobs BlobStore
	cache *cache.Cache
	pub   message.Publisher
	cfg   configs.VaultConfig

	// now 可注入时钟，测试时替换
	now func() time.Time
	// sleep 重试退避使用，测试时替换
	sleep func(time.Duration)
	// newID 生成记录 ID，测试时替换
	newID func() string
}

// NewVaultService 从请求上下文构造服务实例.
func NewVaultService(c context.Context) *VaultService {
	s := &VaultService{
		cfg:   configs.GetConfig().Vault,
		now:   time.Now,
		sleep: time.Sleep,
	}
	s.newID = s.newULID

	if dbc := ctxPkg.GetDBClient(c); dbc != nil {
		s.db = dbc.GetDB()
	}

	if s3c := ctxPkg.GetS3Client(c); s3c != nil {
		s.blobs = s3c
	}

	if kvc := ctxPkg.GetKVClient(c); kvc != nil {
		s.cache = cache.NewCache(kvc)
	}

	if mqc := ctxPkg.GetMQClient(c); mqc != nil {
		s.pub = mqPublisher{client: mqc}
	}

	return s
}

// Provision 迁移表结构并确保系统预置容器存在，服务启动时调用.
func (s *VaultService) Provision(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&model.Folder{}, &model.Document{},
		&model.Diploma{}, &model.DiplomaFile{},
	); err != nil {
		return err
	}

	if _, err := s.ensureNativeFolder(ctx, s.cfg.DocumentsFolder); err != nil {
		return err
	}

	if _, err := s.ensureNativeFolder(ctx, s.cfg.DiplomasFolder); err != nil {
		return err
	}

	return nil
}

// newULID 生成基于注入时钟的 ULID.
func (s *VaultService) newULID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), ulidEntropy).String()
}

// invalidateCache 按子串失效缓存，缓存不可用时静默跳过.
func (s *VaultService) invalidateCache(ctx context.Context, pattern string) {
	if s.cache == nil {
		return
	}

	_ = s.cache.Invalidate(ctx, pattern)
}
