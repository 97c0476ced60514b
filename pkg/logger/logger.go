package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Burkhanovich/article-site/pkg/config"
	"github.com/Burkhanovich/article-site/pkg/middleware/requestid"
)

// DefaultService is the service field of the API process.
const DefaultService = "editorial-api"

// Option customises the logger built by New.
type Option func(*zap.Config)

// WithService overrides the service field, so the seed command and the API can share a sink.
func WithService(name string) Option {
	return func(c *zap.Config) {
		c.InitialFields["service"] = name
	}
}

// New builds the process logger. Production emits JSON at info; other environments use the
// development preset. LOG_FORMAT and LOG_LEVEL override both, and an unknown level falls
// back to info.
func New(cfg *config.Config, opts ...Option) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	}

	zapCfg.Encoding = "json"
	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
	}
	if cfg.Log.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zapcore.InfoLevel
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{"service": DefaultService, "env": cfg.Env}
	for _, opt := range opts {
		opt(&zapCfg)
	}

	return zapCfg.Build()
}

// quietRoutes are probed constantly; their successful hits are logged at debug.
var quietRoutes = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// GinMiddleware logs one line per request. The route template is logged next to the raw
// path so article slugs and ids can be grouped. Client errors go out at warn and server
// errors at error.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id := requestid.Value(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		_, quiet := quietRoutes[route]
		switch {
		case status >= 500:
			l.Error("http_request", fields...)
		case status >= 400:
			l.Warn("http_request", fields...)
		case quiet:
			l.Debug("http_request", fields...)
		default:
			l.Info("http_request", fields...)
		}
	}
}
