package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/EthM370/test-api-lambdas/internal/models"
	"github.com/EthM370/test-api-lambdas/internal/utils"
)

// GatewayHandler turns API Gateway proxy events into calls on an http.Handler.
type GatewayHandler struct {
	adapter *httpadapter.HandlerAdapter
	logger  *zap.Logger
}

// NewGatewayHandler creates a new gateway handler.
func NewGatewayHandler(router http.Handler, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{adapter: httpadapter.New(router), logger: logger}
}

// Handle processes one API Gateway request. It always returns exactly one response and a nil
// error: anything that goes wrong while resolving the route becomes a generic 502.
func (h *GatewayHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	info := models.NewRequestInfo(request)
	ctx, logger := utils.BindRequestID(ctx, h.logger, info.RequestID)
	access := utils.Unleveled(logger)

	access.Info(info.StartLine(),
		utils.String("source_ip", info.SourceIP),
		utils.String("username", info.Username),
		utils.String("method", info.HTTPMethod),
		utils.String("path", info.FullPath()))

	ctx, slot := withErrorSlot(ctx)
	response, err := h.dispatch(ctx, request)
	if slot.err != nil {
		err = slot.err
	}

	if err != nil {
		logError(logger, err)
		response = internalErrorResponse(slot.header)
	}

	access.Info(info.FinishLine(response.StatusCode), utils.Int("status_code", response.StatusCode))
	return response, nil
}

// dispatch serves request through the router. Panics in the route are returned as errors.
func (h *GatewayHandler) dispatch(ctx context.Context, request events.APIGatewayProxyRequest) (response events.APIGatewayProxyResponse, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Wrapf(models.ErrRoutePanicked, "%v", p)
		}
	}()

	response, err = h.adapter.ProxyWithContext(ctx, request)
	if err != nil {
		return response, errors.Mark(errors.Wrap(err, "failed to proxy gateway event"), models.ErrInvalidEvent)
	}
	return response, nil
}

// internalErrorResponse is the fixed 502 envelope. CORS headers already computed for the
// request are kept so browsers can read the error.
func internalErrorResponse(routeHeader http.Header) events.APIGatewayProxyResponse {
	header := http.Header{}
	for key, values := range routeHeader {
		if strings.HasPrefix(key, "Access-Control-") || key == "Vary" {
			header[key] = values
		}
	}
	header.Set("Content-Type", "application/json")

	return events.APIGatewayProxyResponse{
		StatusCode:        http.StatusBadGateway,
		MultiValueHeaders: header,
		Body:              `{"message": "` + models.InternalErrorMessage + `"}`,
	}
}
