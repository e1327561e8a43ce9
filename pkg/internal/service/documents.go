package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	"github.com/yeisme/docvault/pkg/queue"
)

// documentsCacheKey 计算按层级的文档列表缓存键.
func documentsCacheKey(folderID *string) string {
	if folderID == nil {
		return cacheKeyDocumentsRoot
	}

	return cacheKeyDocumentsPfx + *folderID
}

// ListDocuments 返回指定层级的文档，folderID 为 nil 时返回根层级文档.
func (s *VaultService) ListDocuments(ctx context.Context, folderID *string) (*types.ListDocumentsResponse, int, error) {
	key := documentsCacheKey(folderID)

	if s.cache != nil {
		if cached, err := cache.Get[types.ListDocumentsResponse](ctx, s.cache, key); err == nil {
			return &cached, 1, nil
		}
	}

	docs, attempts, err := readWithRetries(ctx, s, "documents.list", func() ([]model.Document, error) {
		var docs []model.Document

		q := s.db.WithContext(ctx).Order("upload_date DESC")
		if folderID == nil {
			q = q.Where("folder_id IS NULL")
		} else {
			q = q.Where("folder_id = ?", *folderID)
		}

		if err := q.Find(&docs).Error; err != nil {
			return nil, err
		}

		return docs, nil
	})
	if err != nil {
		return nil, attempts, err
	}

	resp := &types.ListDocumentsResponse{
		Documents: make([]types.DocumentResponse, 0, len(docs)),
		Total:     len(docs),
	}
	for i := range docs {
		resp.Documents = append(resp.Documents, documentToResponse(&docs[i]))
	}

	if s.cache != nil {
		_ = cache.Set(ctx, s.cache, key, *resp, s.cfg.GetCacheTTL())
	}

	return resp, attempts, nil
}

// RenameDocument 重命名文档，受保护的文档拒绝操作.
func (s *VaultService) RenameDocument(ctx context.Context, id string, newName string) (*types.DocumentResponse, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, errors.Join(types.ErrInvalidInput, errors.New("document name must not be empty"))
	}

	var doc model.Document
	if err := s.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, classifyDBError(err)
	}

	if doc.IsProtected {
		return nil, errors.Join(types.ErrForbidden, errors.New("document is protected"))
	}

	oldName := doc.Name
	doc.Name = newName
	doc.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", doc.ID).
		Updates(map[string]any{"name": doc.Name, "updated_at": doc.UpdatedAt}).Error; err != nil {
		return nil, classifyDBError(err)
	}

	s.invalidateCache(ctx, cacheKeyDocumentsPfx)

	s.publishEvent(queue.TopicDocumentRenamed, func(pub message.Publisher) error {
		return queue.PublishDocumentRenamed(pub, queue.DocumentRenamedPayload{
			Document: documentRef(&doc),
			OldName:  oldName,
		})
	})

	resp := documentToResponse(&doc)

	return &resp, nil
}

// MoveDocument 移动文档到目标文件夹，目标为 nil 时移动到根层级.
func (s *VaultService) MoveDocument(ctx context.Context, id string, folderID *string) (*types.DocumentResponse, error) {
	var doc model.Document
	if err := s.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, classifyDBError(err)
	}

	if doc.IsProtected {
		return nil, errors.Join(types.ErrForbidden, errors.New("document is protected"))
	}

	if folderID != nil {
		var folder model.Folder
		if err := s.db.WithContext(ctx).First(&folder, "id = ?", *folderID).Error; err != nil {
			return nil, classifyDBError(err)
		}
	}

	oldFolderID := doc.FolderID
	doc.FolderID = folderID
	doc.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", doc.ID).
		Updates(map[string]any{"folder_id": doc.FolderID, "updated_at": doc.UpdatedAt}).Error; err != nil {
		return nil, classifyDBError(err)
	}

	s.invalidateCache(ctx, cacheKeyDocumentsPfx)

	s.publishEvent(queue.TopicDocumentMoved, func(pub message.Publisher) error {
		payload := queue.DocumentMovedPayload{Document: documentRef(&doc)}
		if oldFolderID != nil {
			payload.OldFolderID = *oldFolderID
		}

		return queue.PublishDocumentMoved(pub, payload)
	})

	resp := documentToResponse(&doc)

	return &resp, nil
}

// DeleteDocument 删除文档记录，blob 清理尽力而为.
// 受保护的文档拒绝删除. blob 删除失败不影响结果，只在响应中标记.
func (s *VaultService) DeleteDocument(ctx context.Context, id string) (*types.DeleteDocumentResponse, error) {
	var doc model.Document
	if err := s.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, classifyDBError(err)
	}

	if doc.IsProtected {
		return nil, errors.Join(types.ErrForbidden, errors.New("document is protected"))
	}

	if err := s.db.WithContext(ctx).Delete(&model.Document{}, "id = ?", id).Error; err != nil {
		return nil, classifyDBError(err)
	}

	blobRemoved := s.removeBlobBestEffort(ctx, &doc)

	s.invalidateCache(ctx, cacheKeyDocumentsPfx)

	s.publishEvent(queue.TopicDocumentDeleted, func(pub message.Publisher) error {
		return queue.PublishDocumentDeleted(pub, queue.DocumentDeletedPayload{
			Document:    documentRef(&doc),
			BlobRemoved: blobRemoved,
		})
	})

	return &types.DeleteDocumentResponse{
		DocumentID:  doc.ID,
		Name:        doc.Name,
		BlobRemoved: blobRemoved,
	}, nil
}

// DownloadDocument 生成文档的限时下载链接.
func (s *VaultService) DownloadDocument(ctx context.Context, id string) (*types.DownloadDocumentResponse, error) {
	var doc model.Document
	if err := s.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, classifyDBError(err)
	}

	if s.blobs == nil {
		return nil, errors.Join(types.ErrTransient, errors.New("blob store not available"))
	}

	expiry := s.cfg.GetPresignedExpiry()

	u, err := s.blobs.PresignGet(ctx, doc.FilePath, expiry, doc.Name)
	if err != nil {
		return nil, errors.Join(types.ErrTransient, err)
	}

	return &types.DownloadDocumentResponse{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		URL:        u.String(),
		ExpiresIn:  int(expiry / time.Second),
	}, nil
}

func documentToResponse(d *model.Document) types.DocumentResponse {
	return types.DocumentResponse{
		ID:           d.ID,
		Name:         d.Name,
		OriginalName: d.OriginalName,
		Filename:     d.Filename,
		FileSize:     d.FileSize,
		FileType:     d.FileType,
		FolderID:     d.FolderID,
		IsProtected:  d.IsProtected,
		UploadDate:   d.UploadDate.UTC().Format(time.RFC3339),
	}
}

func documentRef(d *model.Document) queue.DocumentRef {
	ref := queue.DocumentRef{
		ID:          d.ID,
		Name:        d.Name,
		ObjectKey:   d.FilePath,
		Size:        d.FileSize,
		ContentType: d.FileType,
		ETag:        d.ETag,
	}
	if d.FolderID != nil {
		ref.FolderID = *d.FolderID
	}

	return ref
}
