package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/queue"
)

// ListDiplomas 返回全部凭证及附件，带读重试.
func (s *VaultService) ListDiplomas(ctx context.Context) (*types.ListDiplomasResponse, int, error) {
	diplomas, attempts, err := readWithRetries(ctx, s, "diplomas.list", func() ([]model.Diploma, error) {
		var diplomas []model.Diploma
		if err := s.db.WithContext(ctx).Preload("Files").Order("date DESC").Find(&diplomas).Error; err != nil {
			return nil, err
		}

		return diplomas, nil
	})
	if err != nil {
		return nil, attempts, err
	}

	resp := &types.ListDiplomasResponse{
		Diplomas: make([]types.DiplomaResponse, 0, len(diplomas)),
		Total:    len(diplomas),
	}
	for i := range diplomas {
		resp.Diplomas = append(resp.Diplomas, diplomaToResponse(&diplomas[i]))
	}

	return resp, attempts, nil
}

// SyncDiplomas 将外部凭证镜像到文档库：每个凭证一个文件夹，附件去重落库.
// 幂等：重复执行时已存在的文件夹与文档全部跳过. trigger 标记触发来源（api/cron）.
// 预置容器由启动预配创建，此处只定位不创建，缺失即失败.
func (s *VaultService) SyncDiplomas(ctx context.Context, trigger string) (*types.SyncDiplomasResponse, error) {
	container, err := s.lookupNativeFolder(ctx, s.cfg.DiplomasFolder)
	if err != nil {
		s.publishSyncFailed(err, trigger)
		return nil, err
	}

	var diplomas []model.Diploma
	if err := s.db.WithContext(ctx).Preload("Files").Find(&diplomas).Error; err != nil {
		err = classifyDBError(err)
		s.publishSyncFailed(err, trigger)

		return nil, err
	}

	stats := &types.SyncDiplomasResponse{}

	for i := range diplomas {
		if err := s.syncOneDiploma(ctx, container, &diplomas[i], stats); err != nil {
			// 单个凭证失败不影响其余同步
			nlog.Logger().Warn().
				Err(err).
				Str("diploma_id", diplomas[i].ID).
				Msg("diploma sync skipped after error")
		}
	}

	s.invalidateCache(ctx, cacheKeyFolders)
	s.invalidateCache(ctx, cacheKeyDocumentsPfx)

	s.publishEvent(queue.TopicSyncCompleted, func(pub message.Publisher) error {
		return queue.PublishSyncCompleted(pub, queue.SyncCompletedPayload{
			FoldersCreated:   stats.FoldersCreated,
			DocumentsCreated: stats.DocumentsCreated,
			Skipped:          stats.Skipped,
			Trigger:          trigger,
		})
	})

	nlog.Logger().Info().
		Int("folders_created", stats.FoldersCreated).
		Int("documents_created", stats.DocumentsCreated).
		Int("skipped", stats.Skipped).
		Str("trigger", trigger).
		Msg("diploma sync completed")

	return stats, nil
}

// syncOneDiploma 同步单个凭证：定位或创建文件夹，再去重落附件记录.
func (s *VaultService) syncOneDiploma(ctx context.Context, container *model.Folder, d *model.Diploma, stats *types.SyncDiplomasResponse) error {
	folderName := s.diplomaFolderName(d)

	folder, created, err := s.findOrCreateFolder(ctx, folderName, &container.ID, false)
	if err != nil {
		return err
	}

	if created {
		stats.FoldersCreated++
	}

	for j := range d.Files {
		file := &d.Files[j]

		taken, err := s.filenameTaken(ctx, file.Filename, &folder.ID)
		if err != nil {
			return err
		}

		if taken {
			stats.Skipped++
			continue
		}

		doc := model.Document{
			ID:           s.newID(),
			Name:         file.Filename,
			OriginalName: file.OriginalName,
			Filename:     file.Filename,
			FilePath:     file.FilePath,
			FileSize:     file.FileSize,
			FileType:     file.FileType,
			FolderID:     &folder.ID,
			IsProtected:  false,
			UploadDate:   file.UploadDate,
			UpdatedAt:    s.now(),
		}

		if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
			return classifyDBError(err)
		}

		stats.DocumentsCreated++
	}

	return nil
}

// diplomaFolderName 生成凭证文件夹名："{name} - DD/MM/YYYY".
func (s *VaultService) diplomaFolderName(d *model.Diploma) string {
	return fmt.Sprintf("%s - %s", d.Name, d.Date.Format(s.cfg.DiplomaDateStyle))
}

// lookupNativeFolder 定位系统预置容器，只查不建：缺失说明启动预配没有执行.
func (s *VaultService) lookupNativeFolder(ctx context.Context, name string) (*model.Folder, error) {
	var folder model.Folder

	err := s.db.WithContext(ctx).
		Where("name = ? AND is_native = ? AND parent_id IS NULL", name, true).
		First(&folder).Error
	if err != nil {
		if classified := classifyDBError(err); !errors.Is(classified, types.ErrNotFound) {
			return nil, classified
		}

		return nil, errors.Join(types.ErrInconsistent,
			fmt.Errorf("native folder %q is not provisioned", name))
	}

	return &folder, nil
}

// ensureNativeFolder 定位系统预置容器，缺失时创建（预置容器同时锁定）.
func (s *VaultService) ensureNativeFolder(ctx context.Context, name string) (*model.Folder, error) {
	var folder model.Folder

	err := s.db.WithContext(ctx).
		Where("name = ? AND is_native = ? AND parent_id IS NULL", name, true).
		First(&folder).Error
	if err == nil {
		return &folder, nil
	}

	if classified := classifyDBError(err); !errors.Is(classified, types.ErrNotFound) {
		return nil, classified
	}

	now := s.now()
	folder = model.Folder{
		ID:        s.newID(),
		Name:      name,
		IsNative:  true,
		IsSecure:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, classifyDBError(err)
	}

	s.invalidateCache(ctx, cacheKeyFolders)

	nlog.Logger().Info().Str("name", name).Msg("native folder provisioned")

	return &folder, nil
}

// findOrCreateFolder 按 (name, parent) 定位文件夹，缺失时创建.
func (s *VaultService) findOrCreateFolder(ctx context.Context, name string, parentID *string, secure bool) (*model.Folder, bool, error) {
	var folder model.Folder

	q := s.db.WithContext(ctx).Where("name = ?", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	err := q.First(&folder).Error
	if err == nil {
		return &folder, false, nil
	}

	if classified := classifyDBError(err); !errors.Is(classified, types.ErrNotFound) {
		return nil, false, classified
	}

	now := s.now()
	folder = model.Folder{
		ID:        s.newID(),
		Name:      name,
		ParentID:  parentID,
		IsSecure:  secure,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, false, classifyDBError(err)
	}

	return &folder, true, nil
}

// publishSyncFailed 发布同步整体失败事件.
func (s *VaultService) publishSyncFailed(err error, trigger string) {
	s.publishEvent(queue.TopicSyncFailed, func(pub message.Publisher) error {
		return queue.PublishSyncFailed(pub, queue.SyncFailedPayload{
			Error:   err.Error(),
			Trigger: trigger,
		})
	})
}

func diplomaToResponse(d *model.Diploma) types.DiplomaResponse {
	resp := types.DiplomaResponse{
		ID:     d.ID,
		Name:   d.Name,
		Date:   d.Date.UTC().Format(time.RFC3339),
		Issuer: d.Issuer,
		Files:  make([]types.DiplomaFileResponse, 0, len(d.Files)),
	}

	for i := range d.Files {
		f := &d.Files[i]
		resp.Files = append(resp.Files, types.DiplomaFileResponse{
			ID:       f.ID,
			Filename: f.Filename,
			FileSize: f.FileSize,
			FileType: f.FileType,
		})
	}

	return resp
}
