package gcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status       InstanceStatus
		ready        bool
		provisioning bool
	}{
		{StatusRunnable, true, false},
		{StatusPendingCreate, false, true},
		{StatusMaintenance, false, true},
		{StatusFailed, false, false},
		{StatusNotFound, false, false},
		// Unknown states are treated as still provisioning.
		{InstanceStatus("SQL_INSTANCE_STATE_UNSPECIFIED"), false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ready, tt.status.Ready())
			assert.Equal(t, tt.provisioning, tt.status.Provisioning())
		})
	}
}
