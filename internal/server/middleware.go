package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	"github.com/pvlabs/riskwatch/internal/config"
	"github.com/pvlabs/riskwatch/pkg/log/ctxlogger"
	"go.uber.org/zap"
)

const (
	headerCompanyID     = "X-Company-ID"
	headerCorrelationID = "X-Correlation-ID"
)

// CompanyMiddleware scopes the request to a company, from the X-Company-ID
// header or the configured default.
func CompanyMiddleware(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := cfg.DefaultCompanyID
		if raw := strings.TrimSpace(c.GetHeader(headerCompanyID)); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				AbortWithError(c, newValidationError("company_id", "invalid_company_id", "invalid company id header"))
				return
			}
			companyID = parsed
		}

		ctx := companyctx.WithCompanyID(c.Request.Context(), companyID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CorrelationMiddleware propagates or mints a request correlation ID.
func CorrelationMiddleware() gin.HandlerFunc {
	node, _ := snowflake.NewNode(1023)
	return func(c *gin.Context) {
		cid := strings.TrimSpace(c.GetHeader(headerCorrelationID))
		if cid == "" && node != nil {
			cid = node.Generate().String()
		}

		ctx := ctxlogger.WithCorrelationID(c.Request.Context(), cid)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(headerCorrelationID, cid)
		c.Next()
	}
}

// RequestLogMiddleware emits one structured line per request.
func RequestLogMiddleware(logger *zap.Logger) gin.HandlerFunc {
	accessLog := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctxlogger.WithContext(c.Request.Context(), accessLog).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
