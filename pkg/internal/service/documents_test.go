package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

func TestListDocumentsByLevel(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, s, "docs", nil)
	mustCreateDocument(t, s, "in-folder.txt", &folder.ID, false)
	mustCreateDocument(t, s, "at-root.txt", nil, false)

	inFolder, _, err := s.ListDocuments(ctx, &folder.ID)
	if err != nil {
		t.Fatalf("list folder documents: %v", err)
	}

	if inFolder.Total != 1 || inFolder.Documents[0].Name != "in-folder.txt" {
		t.Fatalf("unexpected folder documents: %+v", inFolder)
	}

	atRoot, _, err := s.ListDocuments(ctx, nil)
	if err != nil {
		t.Fatalf("list root documents: %v", err)
	}

	if atRoot.Total != 1 || atRoot.Documents[0].Name != "at-root.txt" {
		t.Fatalf("unexpected root documents: %+v", atRoot)
	}
}

func TestRenameDocument(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	doc := mustCreateDocument(t, s, "old.txt", nil, false)

	resp, err := s.RenameDocument(ctx, doc.ID, "new.txt")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}

	if resp.Name != "new.txt" {
		t.Fatalf("expected new.txt, got %s", resp.Name)
	}

	if _, err := s.RenameDocument(ctx, doc.ID, ""); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProtectedDocumentOperationsForbidden(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	doc := mustCreateDocument(t, s, "protected.txt", nil, true)

	if _, err := s.RenameDocument(ctx, doc.ID, "x"); !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on rename, got %v", err)
	}

	if _, err := s.DeleteDocument(ctx, doc.ID); !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	folder := mustCreateFolder(t, s, "target", nil)
	if _, err := s.MoveDocument(ctx, doc.ID, &folder.ID); !errors.Is(err, types.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on move, got %v", err)
	}

	// 记录仍然存在
	var count int64

	s.db.Model(&model.Document{}).Where("id = ?", doc.ID).Count(&count)

	if count != 1 {
		t.Fatal("protected document must survive")
	}
}

func TestMoveDocument(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	doc := mustCreateDocument(t, s, "move.txt", nil, false)
	folder := mustCreateFolder(t, s, "target", nil)

	resp, err := s.MoveDocument(ctx, doc.ID, &folder.ID)
	if err != nil {
		t.Fatalf("move: %v", err)
	}

	if resp.FolderID == nil || *resp.FolderID != folder.ID {
		t.Fatalf("expected folder %s, got %+v", folder.ID, resp.FolderID)
	}

	// 移回根层级
	back, err := s.MoveDocument(ctx, doc.ID, nil)
	if err != nil {
		t.Fatalf("move to root: %v", err)
	}

	if back.FolderID != nil {
		t.Fatalf("expected root level, got %+v", back.FolderID)
	}

	missing := "missing-folder"
	if _, err := s.MoveDocument(ctx, doc.ID, &missing); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing target, got %v", err)
	}
}

func TestDeleteDocumentBlobBestEffort(t *testing.T) {
	s, blobs, _ := newTestService(t)
	ctx := context.Background()

	doc := mustCreateDocument(t, s, "gone.txt", nil, false)
	blobs.objects[doc.FilePath] = []byte("data")

	resp, err := s.DeleteDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if !resp.BlobRemoved {
		t.Fatal("expected blob removed")
	}

	// blob 删除失败时记录仍被删除，响应标记失败
	doc2 := mustCreateDocument(t, s, "orphan.txt", nil, false)
	blobs.failRemove = true

	resp2, err := s.DeleteDocument(ctx, doc2.ID)
	if err != nil {
		t.Fatalf("delete with blob failure: %v", err)
	}

	if resp2.BlobRemoved {
		t.Fatal("expected blob removal marked failed")
	}

	var count int64

	s.db.Model(&model.Document{}).Count(&count)

	if count != 0 {
		t.Fatalf("expected all records deleted, got %d", count)
	}
}

func TestDownloadDocument(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	doc := mustCreateDocument(t, s, "dl.txt", nil, false)

	resp, err := s.DownloadDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}

	if resp.URL == "" || resp.ExpiresIn != s.cfg.PresignedExpiry {
		t.Fatalf("unexpected download response: %+v", resp)
	}

	if _, err := s.DownloadDocument(ctx, "missing"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
