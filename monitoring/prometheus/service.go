// Package prometheus serves the metrics and health endpoints of a process and
// counts log entries per level.
package prometheus

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sgryphon/cortex/runtime"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "prometheus")

const shutdownTimeout = 2 * time.Second

// Service provides Prometheus metrics via the /metrics route. This route will
// show all the metrics registered with the Prometheus DefaultRegisterer.
type Service struct {
	server      *http.Server
	svcRegistry *runtime.ServiceRegistry
	failLock    sync.RWMutex
	failStatus  error
}

// NewService sets up a new instance for a given address host:port.
// An empty host will match with any IP so an address like ":2121" is perfectly acceptable.
func NewService(addr string, svcRegistry *runtime.ServiceRegistry) *Service {
	s := &Service{svcRegistry: svcRegistry}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.healthzHandler)
	mux.HandleFunc("/goroutinez", s.goroutinezHandler)

	s.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: time.Second}
	return s
}

// Handler returns the HTTP handler serving the service routes.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	hasError := false
	var buf bytes.Buffer
	if s.svcRegistry != nil {
		for _, st := range s.svcRegistry.Report() {
			status := "OK"
			if st.Err != nil {
				hasError = true
				status = "ERROR " + st.Err.Error()
			}
			if _, err := buf.WriteString(fmt.Sprintf("%s: %s\n", st.Name, status)); err != nil {
				hasError = true
			}
		}
	}

	if hasError {
		w.WriteHeader(http.StatusInternalServerError)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.WithError(err).Error("Could not write healthz body")
	}
}

func (s *Service) goroutinezHandler(w http.ResponseWriter, _ *http.Request) {
	if err := pprof.Lookup("goroutine").WriteTo(w, 2); err != nil {
		log.WithError(err).Error("Could not write goroutine dump")
	}
}

// Start the prometheus service.
func (s *Service) Start() {
	log.WithField("endpoint", s.server.Addr).Info("Starting service")
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.WithError(err).Errorf("Could not listen to host:port %s", s.server.Addr)
			s.failLock.Lock()
			s.failStatus = err
			s.failLock.Unlock()
		}
	}()
}

// Stop the service gracefully.
func (s *Service) Stop() error {
	log.Info("Stopping service")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Status checks for any service failure conditions.
func (s *Service) Status() error {
	s.failLock.RLock()
	defer s.failLock.RUnlock()
	return s.failStatus
}
