package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	minio "github.com/minio/minio-go/v7"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/configs"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/storage/kv"
)

// fakeClock 可推进的测试时钟.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

// stubBlobStore 内存对象存储桩.
type stubBlobStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failPut    bool
	failRemove bool
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{objects: make(map[string][]byte)}
}

func (b *stubBlobStore) Put(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (minio.UploadInfo, error) {
	if b.failPut {
		return minio.UploadInfo{}, fmt.Errorf("stub: put failed")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}

	b.mu.Lock()
	b.objects[objectPath] = data
	b.mu.Unlock()

	return minio.UploadInfo{Key: objectPath, ETag: fmt.Sprintf("etag-%d", len(data)), Size: size}, nil
}

func (b *stubBlobStore) Remove(ctx context.Context, objectPath string) error {
	if b.failRemove {
		return fmt.Errorf("stub: remove failed")
	}

	b.mu.Lock()
	delete(b.objects, objectPath)
	b.mu.Unlock()

	return nil
}

func (b *stubBlobStore) PresignGet(ctx context.Context, objectPath string, expiry time.Duration, downloadName string) (*url.URL, error) {
	return url.Parse("https://blob.test/" + objectPath)
}

func (b *stubBlobStore) has(objectPath string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.objects[objectPath]

	return ok
}

func testVaultConfig() configs.VaultConfig {
	return configs.VaultConfig{
		CacheTTLSeconds:  300,
		ReadRetries:      2,
		RetryBackoffMS:   1,
		MaxUploadBytes:   configs.DefaultMaxUploadBytes,
		CVContentTypes:   []string{configs.DefaultCVContentType},
		DocumentsFolder:  configs.DefaultDocumentsFolder,
		DiplomasFolder:   configs.DefaultDiplomasFolder,
		DiplomaSyncCron:  configs.DefaultDiplomaSyncCron,
		PresignedExpiry:  configs.DefaultPresignedExpiry,
		DiplomaDateStyle: configs.DefaultDiplomaDateStyle,
	}
}

// newTestService 构造一个完全内存化的服务：sqlite :memory: + 内存 KV + blob 桩.
func newTestService(t *testing.T) (*VaultService, *stubBlobStore, *fakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Folder{}, &model.Document{},
		&model.Diploma{}, &model.DiplomaFile{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	clock := newFakeClock()
	blobs := newStubBlobStore()

	s := &VaultService{
		db:    db,
		blobs: blobs,
		cache: cache.NewCache(kv.NewMemoryKVWithClock(clock.Now)),
		cfg:   testVaultConfig(),
		now:   clock.Now,
		sleep: func(time.Duration) {},
	}
	s.newID = s.newULID

	return s, blobs, clock
}

// mustCreateFolder 测试辅助：创建文件夹.
func mustCreateFolder(t *testing.T, s *VaultService, name string, parentID *string) *model.Folder {
	t.Helper()

	now := s.now()
	folder := model.Folder{
		ID:        s.newID(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.Create(&folder).Error; err != nil {
		t.Fatalf("create folder %s: %v", name, err)
	}

	return &folder
}

// mustCreateDocument 测试辅助：直接落一条文档记录.
func mustCreateDocument(t *testing.T, s *VaultService, name string, folderID *string, protected bool) *model.Document {
	t.Helper()

	now := s.now()
	doc := model.Document{
		ID:           s.newID(),
		Name:         name,
		OriginalName: name,
		Filename:     name,
		FilePath:     "documents/test/" + name,
		FileSize:     int64(len(name)),
		FileType:     "application/octet-stream",
		FolderID:     folderID,
		IsProtected:  protected,
		UploadDate:   now,
		UpdatedAt:    now,
	}

	if err := s.db.Create(&doc).Error; err != nil {
		t.Fatalf("create document %s: %v", name, err)
	}

	return &doc
}

// uploadBody 构造上传内容.
func uploadBody(content string) (io.Reader, int64) {
	return bytes.NewReader([]byte(content)), int64(len(content))
}
