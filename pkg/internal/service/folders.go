package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/queue"
)

// loadAllFolders 读取全部文件夹，带读重试.
func (s *VaultService) loadAllFolders(ctx context.Context) ([]model.Folder, int, error) {
	return readWithRetries(ctx, s, "folders.list", func() ([]model.Folder, error) {
		var folders []model.Folder
		if err := s.db.WithContext(ctx).Order("name").Find(&folders).Error; err != nil {
			return nil, err
		}

		return folders, nil
	})
}

// ListFolders 返回全部文件夹，结果走缓存.
func (s *VaultService) ListFolders(ctx context.Context) (*types.ListFoldersResponse, int, error) {
	if s.cache != nil {
		if cached, err := cache.Get[types.ListFoldersResponse](ctx, s.cache, cacheKeyFolders); err == nil {
			return &cached, 1, nil
		}
	}

	folders, attempts, err := s.loadAllFolders(ctx)
	if err != nil {
		return nil, attempts, err
	}

	resp := &types.ListFoldersResponse{
		Folders: make([]types.FolderResponse, 0, len(folders)),
		Total:   len(folders),
	}
	for i := range folders {
		resp.Folders = append(resp.Folders, folderToResponse(&folders[i]))
	}

	if s.cache != nil {
		_ = cache.Set(ctx, s.cache, cacheKeyFolders, *resp, s.cfg.GetCacheTTL())
	}

	return resp, attempts, nil
}

// ListChildren 返回某一层级下的直接子文件夹，parentID 为空表示根层级.
func (s *VaultService) ListChildren(ctx context.Context, parentID *string) (*types.ListFoldersResponse, int, error) {
	all, attempts, err := s.ListFolders(ctx)
	if err != nil {
		return nil, attempts, err
	}

	children := make([]types.FolderResponse, 0)

	for _, f := range all.Folders {
		switch {
		case parentID == nil && f.ParentID == nil:
			children = append(children, f)
		case parentID != nil && f.ParentID != nil && *f.ParentID == *parentID:
			children = append(children, f)
		}
	}

	return &types.ListFoldersResponse{Folders: children, Total: len(children)}, attempts, nil
}

// CreateFolder 创建文件夹，父文件夹必须存在.
func (s *VaultService) CreateFolder(ctx context.Context, req *types.CreateFolderRequest) (*types.FolderResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.Join(types.ErrInvalidInput, errors.New("folder name must not be empty"))
	}

	if req.ParentID != nil {
		var parent model.Folder
		if err := s.db.WithContext(ctx).First(&parent, "id = ?", *req.ParentID).Error; err != nil {
			return nil, classifyDBError(err)
		}
	}

	now := s.now()
	folder := model.Folder{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		ParentID:    req.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, classifyDBError(err)
	}

	s.invalidateCache(ctx, cacheKeyFolders)

	s.publishEvent(queue.TopicFolderCreated, func(pub message.Publisher) error {
		return queue.PublishFolderCreated(pub, queue.FolderCreatedPayload{
			Folder: folderRef(&folder),
			Source: "api",
		})
	})

	resp := folderToResponse(&folder)

	return &resp, nil
}

// RenameFolder 重命名文件夹，受保护的文件夹拒绝操作.
func (s *VaultService) RenameFolder(ctx context.Context, id string, newName string) (*types.FolderResponse, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, errors.Join(types.ErrInvalidInput, errors.New("folder name must not be empty"))
	}

	var folder model.Folder
	if err := s.db.WithContext(ctx).First(&folder, "id = ?", id).Error; err != nil {
		return nil, classifyDBError(err)
	}

	if folder.IsSecure {
		return nil, errors.Join(types.ErrForbidden, errors.New("folder is secured"))
	}

	oldName := folder.Name
	folder.Name = newName
	folder.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Model(&model.Folder{}).
		Where("id = ?", folder.ID).
		Updates(map[string]any{"name": folder.Name, "updated_at": folder.UpdatedAt}).Error; err != nil {
		return nil, classifyDBError(err)
	}

	s.invalidateCache(ctx, cacheKeyFolders)

	s.publishEvent(queue.TopicFolderRenamed, func(pub message.Publisher) error {
		return queue.PublishFolderRenamed(pub, queue.FolderRenamedPayload{
			Folder:  folderRef(&folder),
			OldName: oldName,
		})
	})

	resp := folderToResponse(&folder)

	return &resp, nil
}

// DeleteFolder 删除文件夹及其整棵子树，包括子树内的全部文档.
// 受保护或系统预置的文件夹拒绝删除. blob 清理尽力而为，失败只记录日志.
func (s *VaultService) DeleteFolder(ctx context.Context, id string) (*types.DeleteFolderResponse, error) {
	var folder model.Folder
	if err := s.db.WithContext(ctx).First(&folder, "id = ?", id).Error; err != nil {
		return nil, classifyDBError(err)
	}

	if folder.IsSecure || folder.IsNative {
		return nil, errors.Join(types.ErrForbidden, errors.New("folder is secured"))
	}

	var all []model.Folder
	if err := s.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, classifyDBError(err)
	}

	subtree, err := buildFolderIndex(all).collectSubtree(id)
	if err != nil {
		return nil, err
	}

	var documents []model.Document
	if err := s.db.WithContext(ctx).Where("folder_id IN ?", subtree).Find(&documents).Error; err != nil {
		return nil, classifyDBError(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(documents) > 0 {
			if err := tx.Where("folder_id IN ?", subtree).Delete(&model.Document{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id IN ?", subtree).Delete(&model.Folder{}).Error
	})
	if err != nil {
		return nil, classifyDBError(err)
	}

	// 记录已删除，blob 清理失败不回滚也不上报
	for i := range documents {
		s.removeBlobBestEffort(ctx, &documents[i])
	}

	s.invalidateCache(ctx, cacheKeyFolders)
	s.invalidateCache(ctx, cacheKeyDocumentsPfx)

	s.publishEvent(queue.TopicFolderDeleted, func(pub message.Publisher) error {
		return queue.PublishFolderDeleted(pub, queue.FolderDeletedPayload{
			Folder:           folderRef(&folder),
			FoldersRemoved:   len(subtree),
			DocumentsRemoved: len(documents),
		})
	})

	return &types.DeleteFolderResponse{
		FolderID:         folder.ID,
		Name:             folder.Name,
		FoldersRemoved:   len(subtree),
		DocumentsRemoved: len(documents),
	}, nil
}

// GetFolderPath 返回从根到目标文件夹的路径.
func (s *VaultService) GetFolderPath(ctx context.Context, id string) (*types.FolderPathResponse, int, error) {
	folders, attempts, err := s.loadAllFolders(ctx)
	if err != nil {
		return nil, attempts, err
	}

	path, err := buildFolderIndex(folders).pathToRoot(id)
	if err != nil {
		return nil, attempts, err
	}

	resp := &types.FolderPathResponse{
		FolderID: id,
		Path:     make([]types.FolderResponse, 0, len(path)),
	}
	for _, f := range path {
		resp.Path = append(resp.Path, folderToResponse(f))
	}

	return resp, attempts, nil
}

// GetFolderStats 统计文件夹子树内的文件夹数、文档数与总大小.
func (s *VaultService) GetFolderStats(ctx context.Context, id string) (*types.FolderStatsResponse, int, error) {
	folders, attempts, err := s.loadAllFolders(ctx)
	if err != nil {
		return nil, attempts, err
	}

	subtree, err := buildFolderIndex(folders).collectSubtree(id)
	if err != nil {
		return nil, attempts, err
	}

	type aggregate struct {
		Count int
		Size  int64
	}

	agg, attempts2, err := readWithRetries(ctx, s, "folders.stats", func() (aggregate, error) {
		var a aggregate

		if err := s.db.WithContext(ctx).Model(&model.Document{}).
			Select("COUNT(*) AS count, COALESCE(SUM(file_size), 0) AS size").
			Where("folder_id IN ?", subtree).
			Scan(&a).Error; err != nil {
			return a, err
		}

		return a, nil
	})

	// 两段读各自独立重试，对外只报最差的一段
	attempts = max(attempts, attempts2)
	if err != nil {
		return nil, attempts, err
	}

	return &types.FolderStatsResponse{
		FolderID:       id,
		SubfolderCount: len(subtree) - 1,
		DocumentCount:  agg.Count,
		TotalSize:      agg.Size,
	}, attempts, nil
}

// removeBlobBestEffort 尽力删除对象存储中的 blob，失败只记录日志.
func (s *VaultService) removeBlobBestEffort(ctx context.Context, doc *model.Document) bool {
	if s.blobs == nil || doc.FilePath == "" {
		return false
	}

	if err := s.blobs.Remove(ctx, doc.FilePath); err != nil {
		nlog.Logger().Warn().
			Err(err).
			Str("document_id", doc.ID).
			Str("object_key", doc.FilePath).
			Msg("failed to remove blob, record already deleted")

		return false
	}

	return true
}

func folderToResponse(f *model.Folder) types.FolderResponse {
	return types.FolderResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ParentID:    f.ParentID,
		IsNative:    f.IsNative,
		IsSecure:    f.IsSecure,
		CreatedAt:   f.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   f.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func folderRef(f *model.Folder) queue.FolderRef {
	ref := queue.FolderRef{ID: f.ID, Name: f.Name}
	if f.ParentID != nil {
		ref.ParentID = *f.ParentID
	}

	return ref
}
