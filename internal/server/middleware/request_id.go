package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
)

const XRequestID = "x-request-id"

// GetRequestID returns the id RequestID stored on the echo context.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(XRequestID).(string)
	return id
}

type RequestIDConfig struct {
	Skipper   Skipper
	Generator func() string
}

var DefaultRequestIDConfig = RequestIDConfig{
	Skipper:   DefaultSkipper,
	Generator: uuid.NewString,
}

func RequestID() echo.MiddlewareFunc {
	return RequestIDWithConfig(DefaultRequestIDConfig)
}

// RequestIDWithConfig keeps an incoming x-request-id or generates one. The id is
// echoed in the response and added to every logger derived with logger.Ctx.
func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultRequestIDConfig.Skipper
	}
	if config.Generator == nil {
		config.Generator = DefaultRequestIDConfig.Generator
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}
			reqID := c.Request().Header.Get(XRequestID)
			if reqID == "" {
				reqID = config.Generator()
			}

			ctx := logger.WithContext(c.Request().Context(), "request_id", reqID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(XRequestID, reqID)
			c.Response().Header().Set(XRequestID, reqID)
			return next(c)
		}
	}
}
