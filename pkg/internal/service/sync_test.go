package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// mustCreateDiploma 测试辅助：落一条凭证记录及附件.
func mustCreateDiploma(t *testing.T, s *VaultService, name string, date time.Time, files ...string) *model.Diploma {
	t.Helper()

	d := model.Diploma{
		ID:   s.newID(),
		Name: name,
		Date: date,
	}

	for _, filename := range files {
		d.Files = append(d.Files, model.DiplomaFile{
			ID:           s.newID(),
			DiplomaID:    d.ID,
			OriginalName: "scan " + filename,
			Filename:     filename,
			FilePath:     "diplomas/" + d.ID + "/" + filename,
			FileSize:     int64(len(filename)),
			FileType:     "application/pdf",
			UploadDate:   date.AddDate(0, 0, 3),
		})
	}

	if err := s.db.Create(&d).Error; err != nil {
		t.Fatalf("create diploma %s: %v", name, err)
	}

	return &d
}

// mustProvisionContainers 测试辅助：预置系统容器（正常由启动预配完成）.
func mustProvisionContainers(t *testing.T, s *VaultService) {
	t.Helper()

	if _, err := s.ensureNativeFolder(context.Background(), s.cfg.DiplomasFolder); err != nil {
		t.Fatalf("provision diplomas container: %v", err)
	}
}

func TestSyncDiplomas(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustProvisionContainers(t, s)

	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	mustCreateDiploma(t, s, "Engineering Degree", date, "diploma.pdf", "transcript.pdf")

	stats, err := s.SyncDiplomas(ctx, "api")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	if stats.FoldersCreated != 1 || stats.DocumentsCreated != 2 || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// 凭证文件夹挂在预置容器下
	var container model.Folder
	if err := s.db.Where("name = ? AND is_native = ?", s.cfg.DiplomasFolder, true).First(&container).Error; err != nil {
		t.Fatalf("container missing: %v", err)
	}

	var folder model.Folder
	if err := s.db.Where("parent_id = ?", container.ID).First(&folder).Error; err != nil {
		t.Fatalf("diploma folder missing: %v", err)
	}

	if want := "Engineering Degree - 15/06/2024"; folder.Name != want {
		t.Fatalf("expected folder name %q, got %q", want, folder.Name)
	}

	// 凭证文件夹是普通文件夹，不加锁
	if folder.IsSecure {
		t.Fatal("diploma folder must not be secured")
	}

	if folder.IsNative {
		t.Fatal("diploma folder must not be native")
	}

	// 同步生成的文档不受保护，且逐字段沿用附件元数据
	var docs []model.Document
	if err := s.db.Where("folder_id = ?", folder.ID).Order("filename").Find(&docs).Error; err != nil {
		t.Fatalf("load documents: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	for _, d := range docs {
		if d.IsProtected {
			t.Fatalf("synced document %s must not be protected", d.Filename)
		}

		if want := "scan " + d.Filename; d.OriginalName != want {
			t.Fatalf("expected original name %q, got %q", want, d.OriginalName)
		}

		if want := date.AddDate(0, 0, 3); !d.UploadDate.Equal(want) {
			t.Fatalf("expected upload date %v, got %v", want, d.UploadDate)
		}
	}
}

func TestSyncDiplomasRequiresContainer(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mustCreateDiploma(t, s, "Orphan", date, "orphan.pdf")

	// 容器未预配：同步必须失败而不是自行补建
	_, err := s.SyncDiplomas(ctx, "api")
	if !errors.Is(err, types.ErrInconsistent) {
		t.Fatalf("expected inconsistent-state error, got %v", err)
	}

	var folderCount int64

	s.db.Model(&model.Folder{}).Count(&folderCount)

	if folderCount != 0 {
		t.Fatalf("expected no folders created, got %d", folderCount)
	}
}

func TestSyncDiplomasIdempotent(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustProvisionContainers(t, s)

	date := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	mustCreateDiploma(t, s, "Certification", date, "cert.pdf")

	if _, err := s.SyncDiplomas(ctx, "api"); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	second, err := s.SyncDiplomas(ctx, "api")
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if second.FoldersCreated != 0 || second.DocumentsCreated != 0 {
		t.Fatalf("expected no new records on rerun, got %+v", second)
	}

	if second.Skipped != 1 {
		t.Fatalf("expected 1 skipped, got %d", second.Skipped)
	}

	var docCount int64

	s.db.Model(&model.Document{}).Count(&docCount)

	if docCount != 1 {
		t.Fatalf("expected exactly 1 document after rerun, got %d", docCount)
	}
}

func TestSyncDiplomasPicksUpNewFiles(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustProvisionContainers(t, s)

	date := time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC)
	d := mustCreateDiploma(t, s, "Masters", date, "masters.pdf")

	if _, err := s.SyncDiplomas(ctx, "cron"); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	// 外部系统新增一个附件
	extra := model.DiplomaFile{
		ID:           s.newID(),
		DiplomaID:    d.ID,
		OriginalName: "scan appendix.pdf",
		Filename:     "appendix.pdf",
		FilePath:     "diplomas/" + d.ID + "/appendix.pdf",
		FileSize:     10,
		FileType:     "application/pdf",
		UploadDate:   date.AddDate(0, 1, 0),
	}
	if err := s.db.Create(&extra).Error; err != nil {
		t.Fatalf("add diploma file: %v", err)
	}

	stats, err := s.SyncDiplomas(ctx, "cron")
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if stats.DocumentsCreated != 1 || stats.Skipped != 1 || stats.FoldersCreated != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestListDiplomas(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	date := time.Date(2021, 5, 20, 0, 0, 0, 0, time.UTC)
	mustCreateDiploma(t, s, "Bachelor", date, "b.pdf")

	resp, attempts, err := s.ListDiplomas(ctx)
	if err != nil {
		t.Fatalf("list diplomas: %v", err)
	}

	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}

	if resp.Total != 1 || len(resp.Diplomas[0].Files) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
