package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestExecute verifies direct script execution with environment and stdin.
func TestExecute(t *testing.T) {
	meta := map[string]string{
		"REQUEST_METHOD": "POST",
		"QUERY_STRING":   "a=1",
		"SCRIPT_NAME":    "/cgi-bin/env.sh",
	}
	out, err := Execute(context.Background(), "testdata/env.sh", meta, []string{"PROBE_EXTRA=hi"}, []byte("stdin-bytes"), 1<<20)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "method=POST")
	assert.Contains(t, string(out), "extra=hi")
	assert.Contains(t, string(out), "stdin-bytes")
}

// TestExecute_Timeout verifies that a script exceeding the deadline is
// killed and reported as an error.
func TestExecute_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := Execute(ctx, "testdata/sleep.sh", map[string]string{}, nil, nil, 1<<20)
	assert.Error(t, err)
}

// TestExecute_OutputLimit verifies the output size cap.
func TestExecute_OutputLimit(t *testing.T) {
	_, err := Execute(context.Background(), "testdata/env.sh", map[string]string{}, nil, nil, 10)
	assert.ErrorIs(t, err, ErrOutputTooLarge)
}
