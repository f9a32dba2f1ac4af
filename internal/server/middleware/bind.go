package middleware

import (
	"bytes"
	"io"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BindAndValidate binds path params, query params and the request body, then
// validates the request struct. The body is decoded into the field tagged
// `body:"json"` so handlers can receive schemaless payloads.
// Binding failures are plain errors: the API answers every handler failure alike.
func BindAndValidate(c echo.Context, req interface{}) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, req); err != nil {
		return errors.Wrap(unwrapHTTPError(err), "bind path params")
	}

	if err := binder.BindQueryParams(c, req); err != nil {
		return errors.Wrap(unwrapHTTPError(err), "bind query params")
	}

	if err := bindBody(c.Request().Body, req); err != nil {
		return err
	}

	if err := c.Validate(req); err != nil {
		return errors.Wrap(err, "validate request")
	}

	return nil
}

func unwrapHTTPError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		return he.Internal
	}
	return err
}

// bindBody decodes body into the first struct field tagged `body:"json"`.
// dst must be a pointer to a struct
func bindBody(body io.Reader, dst interface{}) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Ptr {
		return errors.New("non-pointer passed to bind body")
	}

	indirect := reflect.Indirect(ptr)
	structType := indirect.Type()
	for i := 0; i < structType.NumField(); i++ {
		if structType.Field(i).Tag.Get("body") != "json" {
			continue
		}
		if body == nil {
			return nil
		}

		data, err := io.ReadAll(body)
		if err != nil {
			return errors.Wrap(err, "read body")
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		field := indirect.Field(i)
		if err := json.Unmarshal(data, field.Addr().Interface()); err != nil {
			return errors.Wrapf(err, "cannot decode body into %s.%s", structType.Name(), structType.Field(i).Name)
		}
		return nil
	}

	return nil
}
