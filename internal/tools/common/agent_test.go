package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgentFromRequest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "no agent specified returns default",
			args:     map[string]interface{}{},
			expected: "default",
		},
		{
			name: "agent specified returns agent",
			args: map[string]interface{}{
				"agent": "agent-42",
			},
			expected: "agent-42",
		},
		{
			name: "empty agent returns default",
			args: map[string]interface{}{
				"agent": "",
			},
			expected: "default",
		},
		{
			name: "agent with other params",
			args: map[string]interface{}{
				"agent": "agent-7",
				"other": "value",
			},
			expected: "agent-7",
		},
		{
			name:     "nil args returns default",
			args:     nil,
			expected: "default",
		},
		{
			name: "non-string agent type returns default",
			args: map[string]interface{}{
				"agent": 123,
			},
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AgentFromRequest(ctx, tt.args))
		})
	}
}
