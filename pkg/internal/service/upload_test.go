package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yeisme/docvault/pkg/internal/types"
)

func TestUploadDocument(t *testing.T) {
	s, blobs, _ := newTestService(t)
	ctx := context.Background()

	body, size := uploadBody("hello world")

	resp, err := s.UploadDocument(ctx, &types.UploadDocumentRequest{}, "hello.txt", "text/plain", size, body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if resp.Document.Filename != "hello.txt" || resp.Document.FileSize != size {
		t.Fatalf("unexpected document: %+v", resp.Document)
	}

	if resp.ETag == "" {
		t.Fatal("expected etag")
	}

	if !blobs.has("documents/root/hello.txt") {
		t.Fatal("expected blob stored")
	}
}

func TestUploadValidation(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	empty, _ := uploadBody("")
	if _, err := s.UploadDocument(ctx, &types.UploadDocumentRequest{}, "e.txt", "text/plain", 0, empty); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty file, got %v", err)
	}

	big, _ := uploadBody("x")
	if _, err := s.UploadDocument(ctx, &types.UploadDocumentRequest{}, "big.bin", "application/octet-stream", s.cfg.MaxUploadBytes+1, big); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversize file, got %v", err)
	}

	body, size := uploadBody("data")
	missing := "missing-folder"
	if _, err := s.UploadDocument(ctx, &types.UploadDocumentRequest{FolderID: &missing}, "a.txt", "text/plain", size, body); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing folder, got %v", err)
	}
}

func TestUploadDuplicateFilenameGetsTimestampSuffix(t *testing.T) {
	s, blobs, clock := newTestService(t)
	ctx := context.Background()

	first, size := uploadBody("v1")
	if _, err := s.UploadDocument(ctx, &types.UploadDocumentRequest{}, "report.pdf", "application/pdf", size, first); err != nil {
		t.Fatalf("first upload: %v", err)
	}

	second, size2 := uploadBody("v2")

	resp, err := s.UploadDocument(ctx, &types.UploadDocumentRequest{}, "report.pdf", "application/pdf", size2, second)
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}

	want := "report_" + clock.Now().UTC().Format("20060102150405") + ".pdf"
	if resp.Document.Filename != want {
		t.Fatalf("expected %s, got %s", want, resp.Document.Filename)
	}

	if !blobs.has("documents/root/" + want) {
		t.Fatal("expected stamped blob stored")
	}
}

func TestUploadCV(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	// 非 PDF 拒绝
	bad, size := uploadBody("not a pdf")
	if _, err := s.UploadCV(ctx, "cv.docx", "application/msword", size, bad); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-pdf cv, got %v", err)
	}

	good, size2 := uploadBody("%PDF-1.7")

	resp, err := s.UploadCV(ctx, "cv.pdf", "application/pdf", size2, good)
	if err != nil {
		t.Fatalf("upload cv: %v", err)
	}

	// CV 落在系统预置的文档容器里
	if resp.Document.FolderID == nil {
		t.Fatal("expected cv in documents container")
	}

	folders, _, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}

	var containerFound bool

	for _, f := range folders.Folders {
		if f.ID == *resp.Document.FolderID {
			containerFound = true

			if f.Name != s.cfg.DocumentsFolder || !f.IsNative {
				t.Fatalf("cv container unexpected: %+v", f)
			}
		}
	}

	if !containerFound {
		t.Fatal("cv container not in folder list")
	}
}

func TestUploadOrphanToleratedOnRecordFailure(t *testing.T) {
	s, blobs, _ := newTestService(t)
	ctx := context.Background()

	// 固定 ID 生成器制造主键冲突，模拟 blob 写入后落库失败
	existing := mustCreateDocument(t, s, "taken.txt", nil, false)
	s.newID = func() string { return existing.ID }

	body, size := uploadBody("content")

	_, err := s.UploadDocument(ctx, &types.UploadDocumentRequest{}, "orphan.txt", "text/plain", size, body)
	if err == nil {
		t.Fatal("expected record insert failure")
	}

	if !errors.Is(err, types.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}

	// blob 留在对象存储中成为孤儿
	if !blobs.has("documents/root/orphan.txt") {
		t.Fatal("expected orphan blob to remain")
	}
}
