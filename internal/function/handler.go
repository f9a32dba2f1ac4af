// Package function serves the catalog as AWS Lambda functions: the API
// Gateway proxy handler and the DynamoDB stream logger.
package function

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/usecase"
	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "*",
	"Content-Type":                 "application/json",
}

type Handler struct {
	products usecase.ProductUsecase
	log      *zap.SugaredLogger
}

func NewHandler(products usecase.ProductUsecase, log *zap.SugaredLogger) *Handler {
	return &Handler{
		products: products,
		log:      log,
	}
}

// Handle routes on the HTTP method and the optional id path parameter.
// It never returns an error: failures are answered with the 500 envelope.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = logger.WithContext(ctx, "request_id", req.RequestContext.RequestID)
	log := logger.Ctx(ctx, h.log)
	log.Debugw("event", "method", req.HTTPMethod, "path", req.Path, "path_parameters", req.PathParameters)

	body, err := h.route(ctx, req)
	if err != nil {
		log.Errorw("failed to perform operation", "method", req.HTTPMethod, "error", err)
		return respond(http.StatusInternalServerError, models.NewErrorEnvelope(err))
	}
	return respond(http.StatusOK, models.NewEnvelope(req.HTTPMethod, body))
}

func (h *Handler) route(ctx context.Context, req events.APIGatewayProxyRequest) (any, error) {
	id := req.PathParameters["id"]

	switch req.HTTPMethod {
	case http.MethodGet:
		if id != "" {
			return h.products.GetProduct(ctx, id)
		}
		return h.products.ListProducts(ctx)
	case http.MethodPost:
		payload, err := decodeBody(req)
		if err != nil {
			return nil, err
		}
		return h.products.CreateProduct(ctx, payload)
	case http.MethodPut:
		if id == "" {
			return nil, errors.New("missing path parameter: id")
		}
		patch, err := decodeBody(req)
		if err != nil {
			return nil, err
		}
		return h.products.UpdateProduct(ctx, id, patch)
	case http.MethodDelete:
		if id == "" {
			return nil, errors.New("missing path parameter: id")
		}
		return h.products.DeleteProduct(ctx, id)
	default:
		return nil, errors.Errorf("Unsupported route: %s", req.HTTPMethod)
	}
}

func decodeBody(req events.APIGatewayProxyRequest) (models.Item, error) {
	if strings.TrimSpace(req.Body) == "" {
		return models.Item{}, nil
	}
	var item models.Item
	if err := json.Unmarshal([]byte(req.Body), &item); err != nil {
		return nil, errors.Wrap(err, "decode request body")
	}
	return item, nil
}

func respond(status int, payload any) (events.APIGatewayProxyResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrap(err, "encode response")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders,
		Body:       string(data),
	}, nil
}
