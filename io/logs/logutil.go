// Package logs configures logrus output for the command line tools: console
// formatting, an optional persistent log file and credential masking for
// logged endpoints.
package logs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wercker/journalhook"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const (
	timestampFormat = "2006-01-02 15:04:05"
	logFilePerms    = 0600
	logDirPerms     = 0700
)

// ErrUnknownFormat is returned for a log format that is not supported.
var ErrUnknownFormat = errors.New("unknown log format")

var _ = logrus.Hook(&WriterHook{})

// WriterHook is a hook that writes logs of specified LogLevels to the file logger.
type WriterHook struct {
	LogLevels []logrus.Level
	logger    *logrus.Logger
}

// Fire will be called when some logging function is called with current hook.
// It will format log entry to string and write it to the file logger.
func (hook *WriterHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	hook.logger.Println(strings.TrimSuffix(line, "\n"))
	return nil
}

// Levels defines on which log levels this hook would trigger.
func (hook *WriterHook) Levels() []logrus.Level {
	return hook.LogLevels
}

// ConfigureFormatter sets the formatter of the standard logger. Supported
// formats are text, json, fluentd and journald. Colors are disabled for text
// output when logs are also written to a file.
func ConfigureFormatter(format string, disableColors bool) error {
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = timestampFormat
		formatter.FullTimestamp = true
		formatter.DisableColors = disableColors
		logrus.SetFormatter(formatter)
	case "fluentd":
		logrus.SetFormatter(joonix.NewFormatter())
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "journald":
		journalhook.Enable()
	default:
		return errors.Wrap(ErrUnknownFormat, format)
	}
	return nil
}

// ConfigurePersistentLogging adds a hook appending every log entry to
// logFileName in the given format. Parent directories are created as needed.
func ConfigurePersistentLogging(logFileName string, format string) error {
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	fileLogger := &logrus.Logger{
		Level: logrus.TraceLevel,
	}
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = timestampFormat
		formatter.FullTimestamp = true
		formatter.DisableColors = true
		fileLogger.SetFormatter(formatter)
	case "fluentd":
		fileLogger.SetFormatter(joonix.NewFormatter())
	case "json":
		fileLogger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Wrapf(ErrUnknownFormat, "log file format %s", format)
	}

	if err := os.MkdirAll(filepath.Dir(logFileName), logDirPerms); err != nil {
		return errors.Wrap(err, "could not create log directory")
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerms) // #nosec G304
	if err != nil {
		return err
	}
	fileLogger.SetOutput(f)
	logrus.AddHook(&WriterHook{
		LogLevels: logrus.AllLevels,
		logger:    fileLogger,
	})
	logrus.Info("File logging initialized")
	return nil
}

// MaskCredentialsLogging masks the url credentials before logging for security purpose
// [scheme:][//[userinfo@]host][/]path[?query][#fragment] -->  [scheme:][//[***]host][/***][#***]
// if the format is not matched nothing is done, string is returned as is.
func MaskCredentialsLogging(currURL string) string {
	masked := currURL
	u, err := url.Parse(currURL)
	if err != nil {
		return currURL
	}
	if u.User != nil {
		masked = strings.Replace(masked, u.User.String(), "***", 1)
	}
	if len(u.RequestURI()) > 1 {
		masked = strings.Replace(masked, u.RequestURI(), "/***", 1)
	}
	if len(u.Fragment) > 0 {
		masked = strings.Replace(masked, u.RawFragment, "***", 1)
	}
	return masked
}
