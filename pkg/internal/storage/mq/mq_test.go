package mq

import (
	"testing"

	"github.com/yeisme/docvault/pkg/configs"
)

func TestRegisteredMQTypes(t *testing.T) {
	registered := GetRegisteredMQTypes()

	seen := make(map[configs.MQType]bool, len(registered))
	for _, mqType := range registered {
		seen[mqType] = true
	}

	if !seen[configs.MQTypeNATS] || !seen[configs.MQTypeRedis] {
		t.Fatalf("expected nats and redis factories registered, got %v", registered)
	}
}
