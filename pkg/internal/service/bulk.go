package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeisme/docvault/pkg/internal/types"
	nlog "github.com/yeisme/docvault/pkg/log"
)

// BulkDelete 批量删除文件夹与文档，逐项隔离失败.
// 任一项失败不会中断其余项，结果分别归入 succeeded / failed.
func (s *VaultService) BulkDelete(ctx context.Context, req *types.BulkRequest) (*types.BulkDeleteResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.Join(types.ErrInvalidInput, errors.New("items must not be empty"))
	}

	resp := &types.BulkDeleteResponse{
		Succeeded: make([]types.ItemRef, 0, len(req.Items)),
		Failed:    make([]types.ItemFailure, 0),
	}

	for _, item := range req.Items {
		var err error

		switch item.Kind {
		case types.ItemKindFolder:
			_, err = s.DeleteFolder(ctx, item.ID)
		case types.ItemKindDocument:
			_, err = s.DeleteDocument(ctx, item.ID)
		default:
			err = errors.Join(types.ErrInvalidInput, fmt.Errorf("unknown item kind: %s", item.Kind))
		}

		if err != nil {
			nlog.Logger().Warn().
				Err(err).
				Str("kind", string(item.Kind)).
				Str("id", item.ID).
				Msg("bulk delete item failed")
			resp.Failed = append(resp.Failed, types.ItemFailure{Item: item, Error: err.Error()})

			continue
		}

		resp.Succeeded = append(resp.Succeeded, item)
	}

	return resp, nil
}

// BulkDownload 为批量选择的文档生成下载链接，逐项隔离失败.
// 文件夹项整体标记失败，下载只支持文档.
func (s *VaultService) BulkDownload(ctx context.Context, req *types.BulkRequest) (*types.BulkDownloadResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.Join(types.ErrInvalidInput, errors.New("items must not be empty"))
	}

	resp := &types.BulkDownloadResponse{
		Succeeded: make([]types.BulkDownloadLink, 0, len(req.Items)),
		Failed:    make([]types.ItemFailure, 0),
		ExpiresIn: int(s.cfg.GetPresignedExpiry() / time.Second),
	}

	for _, item := range req.Items {
		if item.Kind != types.ItemKindDocument {
			resp.Failed = append(resp.Failed, types.ItemFailure{
				Item:  item,
				Error: "only documents can be downloaded",
			})

			continue
		}

		link, err := s.DownloadDocument(ctx, item.ID)
		if err != nil {
			nlog.Logger().Warn().
				Err(err).
				Str("id", item.ID).
				Msg("bulk download item failed")
			resp.Failed = append(resp.Failed, types.ItemFailure{Item: item, Error: err.Error()})

			continue
		}

		resp.Succeeded = append(resp.Succeeded, types.BulkDownloadLink{Item: item, URL: link.URL})
	}

	return resp, nil
}
