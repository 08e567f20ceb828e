package logging

import (
	"log/syslog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logrusSyslog "github.com/sirupsen/logrus/hooks/syslog"
)

type Logger struct {
	*logrus.Logger
}

// NewLogger builds the JSON logger. When syslogAddr is set, a UDP syslog
// hook mirrors everything to the log drain; failure to reach it is logged
// and otherwise ignored.
func NewLogger(env, syslogAddr, appName string) *Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if env == "production" {
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(logrus.DebugLevel)
	}

	if syslogAddr != "" {
		hook, err := logrusSyslog.NewSyslogHook("udp", syslogAddr, syslog.LOG_INFO, appName)
		if err != nil {
			log.WithError(err).Error("unable to connect syslog hook")
		} else {
			log.Hooks.Add(hook)
		}
	}

	return &Logger{log}
}

// RequestLogger logs one line per request after the handler chain finishes.
func (l *Logger) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}).Info("request")
	}
}
