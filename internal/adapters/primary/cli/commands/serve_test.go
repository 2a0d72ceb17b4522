package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardURL(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		expected string
	}{
		{
			name:     "port only",
			addr:     ":8080",
			expected: "http://localhost:8080",
		},
		{
			name:     "host and port",
			addr:     "127.0.0.1:9090",
			expected: "http://127.0.0.1:9090",
		},
		{
			name:     "all interfaces",
			addr:     "0.0.0.0:8080",
			expected: "http://0.0.0.0:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dashboardURL(tt.addr))
		})
	}
}
