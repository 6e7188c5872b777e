package prometheus

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sgryphon/cortex/runtime"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
	"github.com/sirupsen/logrus"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

type fakeService struct {
	status error
}

func (*fakeService) Start()          {}
func (*fakeService) Stop() error     { return nil }
func (f *fakeService) Status() error { return f.status }

func get(t *testing.T, h http.Handler, path string) (int, string) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestLifecycle(t *testing.T) {
	hook := logTest.NewGlobal()
	svc := NewService("127.0.0.1:0", nil)
	svc.Start()
	require.LogsContain(t, hook, "Starting service")
	require.NoError(t, svc.Stop())
	require.LogsContain(t, hook, "Stopping service")
}

func TestHealthz(t *testing.T) {
	registry := runtime.NewServiceRegistry()
	fake := &fakeService{}
	require.NoError(t, registry.RegisterService(fake))
	svc := NewService(":0", registry)

	code, body := get(t, svc.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, strings.Contains(body, "fakeService: OK"), body)

	fake.status = errors.New("slot lagging")
	code, body = get(t, svc.Handler(), "/healthz")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, true, strings.Contains(body, "ERROR slot lagging"), body)
}

func TestLogrusCollector(t *testing.T) {
	logrus.AddHook(NewLogrusCollector())
	svc := NewService(":0", nil)

	logrus.WithField("prefix", "collector-test").Warn("Counted warning")
	logrus.WithField("prefix", "collector-test").Warn("Counted warning")
	_, body := get(t, svc.Handler(), "/metrics")
	assert.Equal(t, true, strings.Contains(body, `log_entries_total{level="warning",prefix="collector-test"} 2`), body)
}

func TestLogrusCollector_NonStringPrefix(t *testing.T) {
	c := NewLogrusCollector()
	err := c.Fire(&logrus.Entry{Data: logrus.Fields{"prefix": 7}, Level: logrus.InfoLevel})
	assert.ErrorContains(t, "prefix is not a string", err)
}
