package kv

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memoryEntry 内存存储条目，expiresAt 为零值表示不过期.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryKV 进程内 KV 实现，适合单机部署和测试.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryKV 创建内存 KV 实例.
func NewMemoryKV(ctx context.Context, _ any) (KVStore, error) {
	return NewMemoryKVWithClock(time.Now), nil
}

// NewMemoryKVWithClock 创建使用指定时钟的内存 KV 实例，便于测试过期行为.
func NewMemoryKVWithClock(now func() time.Time) *MemoryKV {
	return &MemoryKV{
		data: make(map[string]memoryEntry),
		now:  now,
	}
}

// Get 获取键的值.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, exists := m.data[key]
	m.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("key not found: %s", key)
	}

	if m.expired(entry) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()

		return nil, fmt.Errorf("key not found: %s", key)
	}

	result := make([]byte, len(entry.value))
	copy(result, entry.value)

	return result, nil
}

// Set 设置键的值，ttl <= 0 表示不过期.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)

	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.data[key] = entry
	m.mu.Unlock()

	return nil
}

// Delete 删除键.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	return nil
}

// Exists 检查键是否存在.
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, exists := m.data[key]
	m.mu.RUnlock()

	if !exists {
		return false, nil
	}

	if m.expired(entry) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()

		return false, nil
	}

	return true, nil
}

// Keys 列出匹配 pattern 的未过期键.
func (m *MemoryKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))

	for key, entry := range m.data {
		if m.expired(entry) {
			continue
		}

		if matchPattern(key, pattern) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Close 清空数据.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	m.data = make(map[string]memoryEntry)
	m.mu.Unlock()

	return nil
}

func (m *MemoryKV) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt)
}

func init() {
	RegisterKVFactory(KVTypeMemory, NewMemoryKV)
}
