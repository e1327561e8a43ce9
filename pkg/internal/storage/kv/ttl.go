package kv

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// ttlMagic 标记带过期信息的封装值，避免误解普通值.
const ttlMagic = "DVTTL1:"

// ttlEnvelope 携带原始值和过期时间的封装结构.
type ttlEnvelope struct {
	V []byte    `json:"v"`
	E time.Time `json:"e"`
}

// encodeWithTTL 在后端不支持原生 TTL 时封装过期时间.
// ttl <= 0 表示不过期，原样返回；第二个返回值表示是否封装.
func encodeWithTTL(value []byte, ttl time.Duration) ([]byte, bool, error) {
	if ttl <= 0 {
		return value, false, nil
	}

	env := ttlEnvelope{
		V: value,
		E: time.Now().Add(ttl),
	}

	b, err := sonic.Marshal(&env)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode ttl envelope: %w", err)
	}

	return append([]byte(ttlMagic), b...), true, nil
}

// decodeWithTTL 解析可能封装了过期时间的值.
// 返回 (原始值, 是否已过期, 是否为封装值, 错误)；now 由调用方传入以便测试.
func decodeWithTTL(b []byte, now time.Time) ([]byte, bool, bool, error) {
	if len(b) < len(ttlMagic) || string(b[:len(ttlMagic)]) != ttlMagic {
		return b, false, false, nil
	}

	var env ttlEnvelope
	if err := sonic.Unmarshal(b[len(ttlMagic):], &env); err != nil {
		return nil, false, true, fmt.Errorf("failed to decode ttl envelope: %w", err)
	}

	if !env.E.IsZero() && now.After(env.E) {
		return nil, true, true, nil
	}

	return env.V, false, true, nil
}
