package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

func TestBulkDeletePartialFailure(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, s, "bulk", nil)
	doc := mustCreateDocument(t, s, "ok.txt", nil, false)
	protected := mustCreateDocument(t, s, "locked.txt", nil, true)

	resp, err := s.BulkDelete(ctx, &types.BulkRequest{Items: []types.ItemRef{
		{Kind: types.ItemKindDocument, ID: doc.ID},
		{Kind: types.ItemKindDocument, ID: protected.ID},
		{Kind: types.ItemKindFolder, ID: folder.ID},
		{Kind: types.ItemKindDocument, ID: "missing"},
	}})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}

	if len(resp.Succeeded) != 2 {
		t.Fatalf("expected 2 succeeded, got %+v", resp.Succeeded)
	}

	if len(resp.Failed) != 2 {
		t.Fatalf("expected 2 failed, got %+v", resp.Failed)
	}

	// 受保护的文档未被删除
	var count int64

	s.db.Model(&model.Document{}).Where("id = ?", protected.ID).Count(&count)

	if count != 1 {
		t.Fatal("protected document must survive bulk delete")
	}
}

func TestBulkDeleteEmpty(t *testing.T) {
	s, _, _ := newTestService(t)

	if _, err := s.BulkDelete(context.Background(), &types.BulkRequest{}); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBulkDownload(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, s, "f", nil)
	doc := mustCreateDocument(t, s, "dl.txt", nil, false)

	resp, err := s.BulkDownload(ctx, &types.BulkRequest{Items: []types.ItemRef{
		{Kind: types.ItemKindDocument, ID: doc.ID},
		{Kind: types.ItemKindFolder, ID: folder.ID},
		{Kind: types.ItemKindDocument, ID: "missing"},
	}})
	if err != nil {
		t.Fatalf("bulk download: %v", err)
	}

	if len(resp.Succeeded) != 1 || resp.Succeeded[0].URL == "" {
		t.Fatalf("expected 1 link, got %+v", resp.Succeeded)
	}

	// 文件夹与缺失文档均失败但不中断
	if len(resp.Failed) != 2 {
		t.Fatalf("expected 2 failed, got %+v", resp.Failed)
	}
}
