// Package maxprocs sets GOMAXPROCS to match the container CPU quota, if any.
// An explicit GOMAXPROCS environment variable is left alone.
package maxprocs

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
)

var log = logrus.WithField("prefix", "maxprocs")

func init() {
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.WithError(err).Debug("Failed to set maxprocs")
	}
}
