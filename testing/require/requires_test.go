package require_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sgryphon/cortex/testing/assertions"
	"github.com/sgryphon/cortex/testing/require"
)

func TestRequire_NoError(t *testing.T) {
	tb := &assertions.TBMock{}
	require.NoError(tb, nil)
	if tb.FatalfMsg != "" {
		t.Errorf("unexpected fatal: %q", tb.FatalfMsg)
	}
	require.NoError(tb, errors.New("slot mismatch"), "Could not process block")
	if !strings.Contains(tb.FatalfMsg, "Could not process block: slot mismatch") {
		t.Errorf("got: %q", tb.FatalfMsg)
	}
	if tb.ErrorfMsg != "" {
		t.Errorf("require must not report through Errorf: %q", tb.ErrorfMsg)
	}
}

func TestRequire_ErrorContains(t *testing.T) {
	tb := &assertions.TBMock{}
	require.ErrorContains(tb, "regression", nil)
	if !strings.Contains(tb.FatalfMsg, "Expected error not returned, got: <nil>, want: regression") {
		t.Errorf("got: %q", tb.FatalfMsg)
	}
}
