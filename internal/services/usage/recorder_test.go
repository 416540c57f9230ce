package usage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRecorderNilPool(t *testing.T) {
	require.Nil(t, NewRecorder(nil))
}

func TestNilRecorderDropsRecords(t *testing.T) {
	var r *Recorder
	// Must not panic or touch a connection.
	r.Record(context.Background(), Record{Route: "/transcribe"})
}

func TestTruncateErrorCode(t *testing.T) {
	require.Equal(t, "short", TruncateErrorCode("short"))
	require.Empty(t, TruncateErrorCode(""))

	long := strings.Repeat("x", maxErrorCodeLen+100)
	got := TruncateErrorCode(long)
	require.Len(t, got, maxErrorCodeLen)
}
