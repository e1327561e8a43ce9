package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cespare/xxhash/v2"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/queue"
)

// UploadDocument 上传文档：先写对象存储，再落数据库记录.
// 记录写入失败时 blob 成为孤儿，记录日志但不尝试复杂的补偿.
func (s *VaultService) UploadDocument(ctx context.Context, req *types.UploadDocumentRequest, originalName string, contentType string, size int64, r io.Reader) (*types.UploadDocumentResponse, error) {
	if err := s.validateUpload(originalName, size); err != nil {
		return nil, err
	}

	if req.FolderID != nil {
		var folder model.Folder
		if err := s.db.WithContext(ctx).First(&folder, "id = ?", *req.FolderID).Error; err != nil {
			return nil, classifyDBError(err)
		}
	}

	return s.storeDocument(ctx, req, originalName, contentType, size, r, "upload")
}

// UploadCV 上传简历：仅接受 PDF，存入系统预置的文档容器.
func (s *VaultService) UploadCV(ctx context.Context, originalName string, contentType string, size int64, r io.Reader) (*types.UploadDocumentResponse, error) {
	if err := s.validateUpload(originalName, size); err != nil {
		return nil, err
	}

	if !s.cfg.IsCVContentType(contentType) {
		return nil, errors.Join(types.ErrInvalidInput,
			fmt.Errorf("cv must be one of %v, got %s", s.cfg.CVContentTypes, contentType))
	}

	folder, err := s.ensureNativeFolder(ctx, s.cfg.DocumentsFolder)
	if err != nil {
		return nil, err
	}

	req := &types.UploadDocumentRequest{FolderID: &folder.ID}

	return s.storeDocument(ctx, req, originalName, contentType, size, r, "cv")
}

// validateUpload 校验文件非空且不超出大小上限.
func (s *VaultService) validateUpload(originalName string, size int64) error {
	if strings.TrimSpace(originalName) == "" {
		return errors.Join(types.ErrInvalidInput, errors.New("file name must not be empty"))
	}

	if size <= 0 {
		return errors.Join(types.ErrInvalidInput, errors.New("file must not be empty"))
	}

	if size > s.cfg.MaxUploadBytes {
		return errors.Join(types.ErrInvalidInput,
			fmt.Errorf("file size %d exceeds limit %d", size, s.cfg.MaxUploadBytes))
	}

	return nil
}

// storeDocument 执行 blob-then-record 的写入流程.
func (s *VaultService) storeDocument(ctx context.Context, req *types.UploadDocumentRequest, originalName string, contentType string, size int64, r io.Reader, source string) (*types.UploadDocumentResponse, error) {
	if s.blobs == nil {
		return nil, errors.Join(types.ErrTransient, errors.New("blob store not available"))
	}

	filename, err := s.uniqueFilename(ctx, originalName, req.FolderID)
	if err != nil {
		return nil, err
	}

	objectKey := s.objectKey(req.FolderID, filename)

	// 边上传边计算内容哈希
	hasher := xxhash.New()
	tee := io.TeeReader(r, hasher)

	info, err := s.blobs.Put(ctx, objectKey, tee, size, contentType)
	if err != nil {
		return nil, errors.Join(types.ErrTransient, fmt.Errorf("store blob: %w", err))
	}

	etag := info.ETag
	if etag == "" {
		etag = fmt.Sprintf("%x", hasher.Sum64())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = originalName
	}

	now := s.now()
	doc := model.Document{
		ID:           s.newID(),
		Name:         name,
		OriginalName: originalName,
		Filename:     filename,
		FilePath:     objectKey,
		FileSize:     size,
		FileType:     contentType,
		ETag:         etag,
		FolderID:     req.FolderID,
		IsProtected:  req.IsProtected,
		UploadDate:   now,
		UpdatedAt:    now,
	}

	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		// blob 已写入，记录失败后成为孤儿，留给后台清理
		nlog.Logger().Error().
			Err(err).
			Str("object_key", objectKey).
			Msg("document record insert failed, blob orphaned")

		return nil, classifyDBError(err)
	}

	s.invalidateCache(ctx, cacheKeyDocumentsPfx)

	s.publishEvent(queue.TopicDocumentStored, func(pub message.Publisher) error {
		return queue.PublishDocumentStored(pub, queue.DocumentStoredPayload{
			Document: documentRef(&doc),
			Source:   source,
		})
	})

	return &types.UploadDocumentResponse{
		Document: documentToResponse(&doc),
		ETag:     etag,
	}, nil
}

// uniqueFilename 保证 (filename, folder) 组合唯一，冲突时追加时间戳后缀.
func (s *VaultService) uniqueFilename(ctx context.Context, originalName string, folderID *string) (string, error) {
	filename := path.Base(strings.TrimSpace(originalName))

	taken, err := s.filenameTaken(ctx, filename, folderID)
	if err != nil {
		return "", err
	}

	if !taken {
		return filename, nil
	}

	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	stamped := fmt.Sprintf("%s_%s%s", base, s.now().UTC().Format("20060102150405"), ext)

	return stamped, nil
}

// filenameTaken 查询同层级下文件名是否已被占用.
func (s *VaultService) filenameTaken(ctx context.Context, filename string, folderID *string) (bool, error) {
	var count int64

	q := s.db.WithContext(ctx).Model(&model.Document{}).Where("filename = ?", filename)
	if folderID == nil {
		q = q.Where("folder_id IS NULL")
	} else {
		q = q.Where("folder_id = ?", *folderID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, classifyDBError(err)
	}

	return count > 0, nil
}

// objectKey 计算对象存储键：documents/<folder|root>/<filename>.
func (s *VaultService) objectKey(folderID *string, filename string) string {
	segment := "root"
	if folderID != nil {
		segment = *folderID
	}

	return fmt.Sprintf("documents/%s/%s", segment, filename)
}
