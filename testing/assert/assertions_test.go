package assert_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/assertions"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestAssert_Equal(t *testing.T) {
	tests := []struct {
		name        string
		expected    interface{}
		actual      interface{}
		msg         []interface{}
		expectedErr string
	}{
		{
			name:     "equal values",
			expected: 42,
			actual:   42,
		},
		{
			name:        "non-equal values",
			expected:    42,
			actual:      41,
			expectedErr: "Values are not equal, want: 42 (int), got: 41 (int)",
		},
		{
			name:        "custom error message with params",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom values are not equal (for slot %d)", 12},
			expectedErr: "Custom values are not equal (for slot 12), want: 42 (int), got: 41 (int)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := &assertions.TBMock{}
			assert.Equal(tb, tt.expected, tt.actual, tt.msg...)
			if !strings.Contains(tb.ErrorfMsg, tt.expectedErr) {
				t.Errorf("got: %q, want: %q", tb.ErrorfMsg, tt.expectedErr)
			}
			if tt.expectedErr == "" && tb.ErrorfMsg != "" {
				t.Errorf("unexpected error: %q", tb.ErrorfMsg)
			}
		})
	}
}

func TestAssert_DeepEqual(t *testing.T) {
	tb := &assertions.TBMock{}
	assert.DeepEqual(tb, []uint64{1, 2}, []uint64{1, 2})
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	assert.DeepEqual(tb, []uint64{1, 2}, []uint64{1, 3})
	if !strings.Contains(tb.ErrorfMsg, "Values are not equal") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
}

func TestAssert_ErrorIs(t *testing.T) {
	target := errors.New("target")
	tb := &assertions.TBMock{}
	assert.ErrorIs(tb, errors.New("other"), target)
	if !strings.Contains(tb.ErrorfMsg, "error not in chain") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
	tb = &assertions.TBMock{}
	assert.ErrorIs(tb, wrapped{target}, target)
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
}

type wrapped struct{ err error }

func (w wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }

func TestAssert_NotNil(t *testing.T) {
	var nilPtr *int
	tb := &assertions.TBMock{}
	assert.NotNil(tb, nilPtr)
	if !strings.Contains(tb.ErrorfMsg, "Unexpected nil value") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
}

func TestAssert_LogsContain(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.WithField("slot", 12).Info("Processed slot")

	tb := &assertions.TBMock{}
	assert.LogsContain(tb, hook, "Processed slot")
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	assert.LogsDoNotContain(tb, hook, "Processed slot")
	if !strings.Contains(tb.ErrorfMsg, "Unexpected log found") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
	tb = &assertions.TBMock{}
	assert.LogsContain(tb, hook, "Processed epoch")
	if !strings.Contains(tb.ErrorfMsg, "Expected log not found") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
}
