package handlers

import (
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/EthM370/test-api-lambdas/internal/utils"
)

// requestTimeLayout matches the requestTime format of API Gateway REST APIs.
const requestTimeLayout = "02/Jan/2006:15:04:05 -0700"

// NewLocalServer exposes a GatewayHandler as a plain HTTP server for local development.
// Each request is converted to the proxy event API Gateway would have sent.
func NewLocalServer(gateway *GatewayHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event, err := EventFromHTTPRequest(r)
		if err != nil {
			gateway.logger.Warn("Failed to read request", utils.Error(err))
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		response, _ := gateway.Handle(r.Context(), event)
		WriteProxyResponse(w, response)
	})
}

// EventFromHTTPRequest builds an API Gateway proxy event from r. The request id comes from
// X-Request-ID when present and is generated otherwise.
func EventFromHTTPRequest(r *http.Request) (events.APIGatewayProxyRequest, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, errors.Wrap(err, "failed to read body")
	}

	body, isBase64 := string(raw), false
	if !utf8.Valid(raw) {
		body, isBase64 = base64.StdEncoding.EncodeToString(raw), true
	}

	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}

	sourceIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		sourceIP = r.RemoteAddr
	}

	headers := make(map[string]string, len(r.Header))
	for key := range r.Header {
		headers[key] = r.Header.Get(key)
	}

	var query map[string]string
	values := r.URL.Query()
	if len(values) > 0 {
		query = make(map[string]string, len(values))
		for key := range values {
			query[key] = values.Get(key)
		}
	}

	return events.APIGatewayProxyRequest{
		Resource:                        r.URL.Path,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         headers,
		MultiValueHeaders:               r.Header,
		QueryStringParameters:           query,
		MultiValueQueryStringParameters: values,
		Body:                            body,
		IsBase64Encoded:                 isBase64,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:   requestID,
			Path:        r.URL.Path,
			HTTPMethod:  r.Method,
			Protocol:    r.Proto,
			RequestTime: time.Now().UTC().Format(requestTimeLayout),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  sourceIP,
				UserAgent: r.UserAgent(),
			},
		},
	}, nil
}

// WriteProxyResponse writes a proxy response envelope to w.
func WriteProxyResponse(w http.ResponseWriter, response events.APIGatewayProxyResponse) {
	for key, values := range response.MultiValueHeaders {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	for key, value := range response.Headers {
		if _, ok := response.MultiValueHeaders[key]; !ok {
			w.Header().Set(key, value)
		}
	}

	body := []byte(response.Body)
	if response.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(response.Body); err == nil {
			body = decoded
		}
	}

	w.WriteHeader(response.StatusCode)
	_, _ = w.Write(body)
}
