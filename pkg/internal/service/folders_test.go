package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

func TestCreateFolder(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := s.CreateFolder(ctx, &types.CreateFolderRequest{Name: "Projects"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	if resp.Name != "Projects" || resp.ParentID != nil {
		t.Fatalf("unexpected folder: %+v", resp)
	}

	child, err := s.CreateFolder(ctx, &types.CreateFolderRequest{Name: "2026", ParentID: &resp.ID})
	if err != nil {
		t.Fatalf("create child folder: %v", err)
	}

	if child.ParentID == nil || *child.ParentID != resp.ID {
		t.Fatalf("expected parent %s, got %+v", resp.ID, child.ParentID)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := s.CreateFolder(ctx, &types.CreateFolderRequest{Name: "   "}); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	missing := "nonexistent-parent"
	if _, err := s.CreateFolder(ctx, &types.CreateFolderRequest{Name: "x", ParentID: &missing}); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing parent, got %v", err)
	}
}

func TestRenameFolder(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, s, "Old", nil)

	resp, err := s.RenameFolder(ctx, folder.ID, "New")
	if err != nil {
		t.Fatalf("rename folder: %v", err)
	}

	if resp.Name != "New" {
		t.Fatalf("expected name New, got %s", resp.Name)
	}

	if _, err := s.RenameFolder(ctx, "missing", "x"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRenameSecureFolderForbidden(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, s, "Locked", nil)
	s.db.Model(folder).Update("is_secure", true)

	if _, err := s.RenameFolder(ctx, folder.ID, "Unlocked"); !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := s.DeleteFolder(ctx, folder.ID); !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}

func TestDeleteFolderCascade(t *testing.T) {
	s, blobs, _ := newTestService(t)
	ctx := context.Background()

	root := mustCreateFolder(t, s, "root", nil)
	child := mustCreateFolder(t, s, "child", &root.ID)
	grand := mustCreateFolder(t, s, "grand", &child.ID)
	sibling := mustCreateFolder(t, s, "sibling", nil)

	d1 := mustCreateDocument(t, s, "a.txt", &root.ID, false)
	d2 := mustCreateDocument(t, s, "b.txt", &grand.ID, false)
	keep := mustCreateDocument(t, s, "keep.txt", &sibling.ID, false)

	blobs.objects[d1.FilePath] = []byte("a")
	blobs.objects[d2.FilePath] = []byte("b")
	blobs.objects[keep.FilePath] = []byte("k")

	resp, err := s.DeleteFolder(ctx, root.ID)
	if err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	if resp.FoldersRemoved != 3 {
		t.Fatalf("expected 3 folders removed, got %d", resp.FoldersRemoved)
	}

	if resp.DocumentsRemoved != 2 {
		t.Fatalf("expected 2 documents removed, got %d", resp.DocumentsRemoved)
	}

	var folderCount, docCount int64

	s.db.Model(&model.Folder{}).Count(&folderCount)
	s.db.Model(&model.Document{}).Count(&docCount)

	if folderCount != 1 || docCount != 1 {
		t.Fatalf("expected 1 folder and 1 document left, got %d/%d", folderCount, docCount)
	}

	if blobs.has(d1.FilePath) || blobs.has(d2.FilePath) {
		t.Fatal("expected cascade-deleted blobs to be removed")
	}

	if !blobs.has(keep.FilePath) {
		t.Fatal("sibling blob must survive")
	}
}

func TestDeleteFolderBlobFailureTolerated(t *testing.T) {
	s, blobs, _ := newTestService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, s, "docs", nil)
	mustCreateDocument(t, s, "a.txt", &folder.ID, false)

	blobs.failRemove = true

	// blob 删除失败不影响记录删除
	if _, err := s.DeleteFolder(ctx, folder.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	var docCount int64

	s.db.Model(&model.Document{}).Count(&docCount)

	if docCount != 0 {
		t.Fatalf("expected document records gone, got %d", docCount)
	}
}

func TestGetFolderPath(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	a := mustCreateFolder(t, s, "a", nil)
	b := mustCreateFolder(t, s, "b", &a.ID)
	c := mustCreateFolder(t, s, "c", &b.ID)

	resp, _, err := s.GetFolderPath(ctx, c.ID)
	if err != nil {
		t.Fatalf("get path: %v", err)
	}

	if len(resp.Path) != 3 {
		t.Fatalf("expected path of 3, got %d", len(resp.Path))
	}

	if resp.Path[0].ID != a.ID || resp.Path[2].ID != c.ID {
		t.Fatalf("path order wrong: %+v", resp.Path)
	}
}

func TestFolderCycleDetected(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	a := mustCreateFolder(t, s, "a", nil)
	b := mustCreateFolder(t, s, "b", &a.ID)

	// 人为制造环：a.parent = b
	s.db.Model(a).Update("parent_id", b.ID)

	if _, _, err := s.GetFolderPath(ctx, b.ID); !errors.Is(err, types.ErrInconsistent) {
		t.Fatalf("expected ErrInconsistent, got %v", err)
	}
}

func TestGetFolderStats(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	root := mustCreateFolder(t, s, "root", nil)
	child := mustCreateFolder(t, s, "child", &root.ID)

	d1 := mustCreateDocument(t, s, "a.txt", &root.ID, false)
	d2 := mustCreateDocument(t, s, "bb.txt", &child.ID, false)
	mustCreateDocument(t, s, "outside.txt", nil, false)

	resp, _, err := s.GetFolderStats(ctx, root.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if resp.SubfolderCount != 1 {
		t.Fatalf("expected 1 subfolder, got %d", resp.SubfolderCount)
	}

	if resp.DocumentCount != 2 {
		t.Fatalf("expected 2 documents, got %d", resp.DocumentCount)
	}

	if want := d1.FileSize + d2.FileSize; resp.TotalSize != want {
		t.Fatalf("expected size %d, got %d", want, resp.TotalSize)
	}
}

func TestGetFolderStatsRetryReporting(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	root := mustCreateFolder(t, s, "root", nil)
	mustCreateDocument(t, s, "a.txt", &root.ID, false)

	// 统计走两段独立读；让每段的首次尝试都碰一次临时故障
	var calls int
	if err := s.db.Callback().Query().Before("gorm:query").Register("flaky_read", func(tx *gorm.DB) {
		calls++
		if calls%2 == 1 {
			_ = tx.AddError(errors.New("connection reset"))
		}
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}

	defer func() {
		_ = s.db.Callback().Query().Remove("flaky_read")
	}()

	resp, attempts, err := s.GetFolderStats(ctx, root.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if resp.DocumentCount != 1 {
		t.Fatalf("expected 1 document, got %d", resp.DocumentCount)
	}

	// 对外报告最差一段的尝试次数，而不是两段累加
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestListFoldersCaching(t *testing.T) {
	s, _, clock := newTestService(t)
	ctx := context.Background()

	mustCreateFolder(t, s, "one", nil)

	first, _, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if first.Total != 1 {
		t.Fatalf("expected 1 folder, got %d", first.Total)
	}

	// 绕过服务直接写库，缓存仍有效时列表不变
	mustCreateFolder(t, s, "two", nil)

	cached, _, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list cached: %v", err)
	}

	if cached.Total != 1 {
		t.Fatalf("expected cached result with 1 folder, got %d", cached.Total)
	}

	// TTL 过期后重新加载
	clock.Advance(time.Duration(s.cfg.CacheTTLSeconds)*time.Second + time.Second)

	fresh, _, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list fresh: %v", err)
	}

	if fresh.Total != 2 {
		t.Fatalf("expected 2 folders after TTL expiry, got %d", fresh.Total)
	}
}

func TestMutationInvalidatesFolderCache(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := s.ListFolders(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := s.CreateFolder(ctx, &types.CreateFolderRequest{Name: "new"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, _, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}

	if resp.Total != 1 {
		t.Fatalf("expected invalidated cache to show 1 folder, got %d", resp.Total)
	}
}

func TestListChildren(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	rootA := mustCreateFolder(t, s, "a", nil)
	mustCreateFolder(t, s, "b", nil)
	mustCreateFolder(t, s, "a-child", &rootA.ID)

	roots, _, err := s.ListChildren(ctx, nil)
	if err != nil {
		t.Fatalf("list root children: %v", err)
	}

	if roots.Total != 2 {
		t.Fatalf("expected 2 root folders, got %d", roots.Total)
	}

	children, _, err := s.ListChildren(ctx, &rootA.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}

	if children.Total != 1 || children.Folders[0].Name != "a-child" {
		t.Fatalf("unexpected children: %+v", children.Folders)
	}
}
