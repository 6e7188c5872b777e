// Package tracing sets up opencensus tracing with a Jaeger exporter.
package tracing

import (
	"contrib.go.opencensus.io/exporter/jaeger"
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/io/logs"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var log = logrus.WithField("prefix", "tracing")

// Setup creates and initializes a new tracing configuration. When tracing is
// disabled spans are never sampled. The returned function flushes the
// exporter and is safe to call when tracing is disabled.
func Setup(name, endpoint string, sampleFraction float64, enable bool) (func(), error) {
	if !enable {
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.NeverSample()})
		return func() {}, nil
	}
	if name == "" {
		return nil, errors.New("tracing service name cannot be empty")
	}
	if sampleFraction < 0 || sampleFraction > 1 {
		return nil, errors.Errorf("sample fraction %f out of range [0, 1]", sampleFraction)
	}

	trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(sampleFraction)})

	log.Infof("Starting Jaeger exporter endpoint at address = %s", logs.MaskCredentialsLogging(endpoint))
	exporter, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: endpoint,
		Process: jaeger.Process{
			ServiceName: name,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create jaeger exporter")
	}
	trace.RegisterExporter(exporter)
	return func() {
		exporter.Flush()
		trace.UnregisterExporter(exporter)
	}, nil
}
