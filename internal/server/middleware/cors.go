package middleware

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
)

// CORS allows any origin when pattern is nil, otherwise only origins matching it.
// Every allowed response carries Access-Control-Allow-Headers: *.
func CORS(pattern *regexp.Regexp) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			respHeader := c.Response().Header()
			if pattern == nil {
				respHeader.Set(echo.HeaderAccessControlAllowOrigin, "*")
			} else {
				respHeader.Add(echo.HeaderVary, echo.HeaderOrigin)
				origin := c.Request().Header.Get(echo.HeaderOrigin)
				if origin == "" || !pattern.MatchString(origin) {
					return next(c)
				}
				respHeader.Set(echo.HeaderAccessControlAllowOrigin, origin)
			}
			respHeader.Set(echo.HeaderAccessControlAllowHeaders, "*")

			if c.Request().Method == http.MethodOptions {
				respHeader.Set(echo.HeaderAccessControlAllowMethods, "OPTIONS, POST, PUT, DELETE, GET, HEAD")
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

// CORSPattern compiles the configured origins. "*" and "" allow every origin.
func CORSPattern(origins string) (*regexp.Regexp, error) {
	if origins == "" || origins == "*" {
		return nil, nil
	}
	return regexp.Compile(origins)
}
