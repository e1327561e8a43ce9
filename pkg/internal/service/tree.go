package service

import (
	"errors"
	"fmt"

	"github.com/yeisme/docvault/pkg/internal/model"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// folderIndex 将文件夹列表组织为按父节点分组的索引.
type folderIndex struct {
	byID       map[string]*model.Folder
	byParentID map[string][]*model.Folder
	roots      []*model.Folder
}

func buildFolderIndex(folders []model.Folder) *folderIndex {
	idx := &folderIndex{
		byID:       make(map[string]*model.Folder, len(folders)),
		byParentID: make(map[string][]*model.Folder),
	}

	for i := range folders {
		f := &folders[i]
		idx.byID[f.ID] = f
	}

	for i := range folders {
		f := &folders[i]
		if f.ParentID == nil {
			idx.roots = append(idx.roots, f)
			continue
		}

		idx.byParentID[*f.ParentID] = append(idx.byParentID[*f.ParentID], f)
	}

	return idx
}

// collectSubtree 迭代收集以 rootID 为根的子树（含根自身）的文件夹 ID.
// 使用显式队列与访问集合，树被破坏成环时返回 ErrInconsistent.
func (idx *folderIndex) collectSubtree(rootID string) ([]string, error) {
	if _, ok := idx.byID[rootID]; !ok {
		return nil, types.ErrNotFound
	}

	var (
		ids     []string
		queue   = []string{rootID}
		visited = make(map[string]bool)
	)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			return nil, errors.Join(types.ErrInconsistent,
				fmt.Errorf("folder tree contains a cycle at %s", id))
		}

		visited[id] = true
		ids = append(ids, id)

		for _, child := range idx.byParentID[id] {
			queue = append(queue, child.ID)
		}
	}

	return ids, nil
}

// pathToRoot 从目标文件夹向上走到根，返回根在前的路径.
// 父链断裂返回 ErrNotFound 包装，成环返回 ErrInconsistent.
func (idx *folderIndex) pathToRoot(folderID string) ([]*model.Folder, error) {
	var (
		path    []*model.Folder
		visited = make(map[string]bool)
	)

	current, ok := idx.byID[folderID]
	if !ok {
		return nil, types.ErrNotFound
	}

	for current != nil {
		if visited[current.ID] {
			return nil, errors.Join(types.ErrInconsistent,
				fmt.Errorf("folder ancestry contains a cycle at %s", current.ID))
		}

		visited[current.ID] = true
		path = append(path, current)

		if current.ParentID == nil {
			break
		}

		parent, ok := idx.byID[*current.ParentID]
		if !ok {
			return nil, errors.Join(types.ErrInconsistent,
				fmt.Errorf("folder %s references missing parent %s", current.ID, *current.ParentID))
		}

		current = parent
	}

	// 反转为根在前
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
