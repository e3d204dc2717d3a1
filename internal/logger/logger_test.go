package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.verbose)
			require.NoError(t, err)
			t.Cleanup(func() { _ = log.Sync() })

			assert.Equal(t, tt.wantDebug, log.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.wantDebug, log.Core().Enabled(zap.InfoLevel))
			assert.True(t, log.Core().Enabled(zap.WarnLevel))
		})
	}
}
