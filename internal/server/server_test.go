package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/kafka"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/memory"
	"github.com/nguyentranbao-ct/product-catalog/internal/repository"
	"github.com/nguyentranbao-ct/product-catalog/internal/usecase"
)

type envelope struct {
	Message    string          `json:"message"`
	Body       json.RawMessage `json:"body"`
	ErrorMsg   string          `json:"errorMsg"`
	ErrorStack string          `json:"errorStack"`
}

func newTestServer(t *testing.T, repo repository.ProductRepository) *echo.Echo {
	t.Helper()
	log := zap.NewNop().Sugar()
	uc := usecase.NewProductUsecase(repo, kafka.NewPublisher(config.KafkaConfig{}, log), log)
	e, err := NewEcho(config.ServerConfig{CORSOrigins: "*"}, NewController(uc), log)
	require.NoError(t, err)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestProductCRUD(t *testing.T) {
	e := newTestServer(t, memory.NewProductRepository())

	rec, env := do(t, e, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `Successfully finished operation: "GET"`, env.Message)
	assert.JSONEq(t, `[]`, string(env.Body))
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))

	rec, env = do(t, e, http.MethodPost, "/products", `{"id":"mine","name":"Mug","price":"4.5","category":"kitchen"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `Successfully finished operation: "POST"`, env.Message)
	var ack models.WriteAck
	require.NoError(t, json.Unmarshal(env.Body, &ack))
	require.NotEmpty(t, ack.ID)
	assert.NotEqual(t, "mine", ack.ID)

	_, env = do(t, e, http.MethodGet, "/products/"+ack.ID, "")
	assert.JSONEq(t, `{"id":"`+ack.ID+`","name":"Mug","price":"4.5","category":"kitchen"}`, string(env.Body))

	_, env = do(t, e, http.MethodPut, "/products/"+ack.ID, `{"price":5}`)
	assert.Equal(t, `Successfully finished operation: "PUT"`, env.Message)
	assert.JSONEq(t, `{"id":"`+ack.ID+`","attributes":{"id":"`+ack.ID+`","name":"Mug","price":5,"category":"kitchen"}}`, string(env.Body))

	_, env = do(t, e, http.MethodGet, "/products", "")
	var items []models.Item
	require.NoError(t, json.Unmarshal(env.Body, &items))
	require.Len(t, items, 1)
	assert.EqualValues(t, 5, items[0]["price"])

	_, env = do(t, e, http.MethodDelete, "/products/"+ack.ID, "")
	assert.Equal(t, `Successfully finished operation: "DELETE"`, env.Message)
	require.NoError(t, json.Unmarshal(env.Body, &ack))
	assert.Equal(t, "Mug", ack.Attributes["name"])

	_, env = do(t, e, http.MethodGet, "/products/"+ack.ID, "")
	assert.JSONEq(t, `{}`, string(env.Body))
}

type brokenRepo struct {
	repository.ProductRepository
}

func (brokenRepo) Scan(context.Context) ([]models.Item, error) {
	return nil, errors.New("ResourceNotFoundException: table missing")
}

func TestFailureEnvelope(t *testing.T) {
	e := newTestServer(t, brokenRepo{})

	rec, env := do(t, e, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, models.FailureMessage, env.Message)
	assert.Equal(t, "list products: ResourceNotFoundException: table missing", env.ErrorMsg)
	assert.NotEmpty(t, env.ErrorStack)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestMalformedBodyIsServerError(t *testing.T) {
	e := newTestServer(t, memory.NewProductRepository())

	rec, env := do(t, e, http.MethodPost, "/products", `{"name":`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, models.FailureMessage, env.Message)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestServer(t, memory.NewProductRepository())

	rec, env := do(t, e, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.FailureMessage, env.Message)
	assert.Equal(t, "no route matched", env.ErrorMsg)

	rec, _ = do(t, e, http.MethodPatch, "/products/p1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, memory.NewProductRepository())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"product-catalog"}`, rec.Body.String())
}

func TestInvalidCORSPattern(t *testing.T) {
	_, err := NewEcho(config.ServerConfig{CORSOrigins: "("}, nil, zap.NewNop().Sugar())
	assert.Error(t, err)
}
