package handlers_test

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EthM370/test-api-lambdas/internal/handlers"
)

func TestEventFromHTTPRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/healthz?a=1&b=2", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	r.Header.Set("User-Agent", "curl/8.0")
	r.Header.Set("X-Request-ID", "local-1")

	event, err := handlers.EventFromHTTPRequest(r)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/healthz", event.Path)
	assert.Equal(t, http.MethodGet, event.HTTPMethod)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, event.QueryStringParameters)
	assert.Equal(t, "local-1", event.RequestContext.RequestID)
	assert.Equal(t, "/api/v1/healthz", event.RequestContext.Path)
	assert.Equal(t, "HTTP/1.1", event.RequestContext.Protocol)
	assert.Equal(t, "203.0.113.7", event.RequestContext.Identity.SourceIP)
	assert.Equal(t, "curl/8.0", event.RequestContext.Identity.UserAgent)
	assert.NotEmpty(t, event.RequestContext.RequestTime)
	assert.False(t, event.IsBase64Encoded)
}

func TestEventFromHTTPRequest_GeneratesRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)

	event, err := handlers.EventFromHTTPRequest(r)
	require.NoError(t, err)

	_, err = uuid.Parse(event.RequestContext.RequestID)
	assert.NoError(t, err)
	assert.Nil(t, event.QueryStringParameters)
}

func TestEventFromHTTPRequest_BinaryBody(t *testing.T) {
	payload := []byte{0xff, 0xfe, 0x00, 0x01}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/echo", strings.NewReader(string(payload)))

	event, err := handlers.EventFromHTTPRequest(r)
	require.NoError(t, err)

	assert.True(t, event.IsBase64Encoded)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), event.Body)
}

func TestWriteProxyResponse(t *testing.T) {
	w := httptest.NewRecorder()

	handlers.WriteProxyResponse(w, events.APIGatewayProxyResponse{
		StatusCode:        http.StatusTeapot,
		Headers:           map[string]string{"Content-Type": "application/json", "Set-Cookie": "a=1"},
		MultiValueHeaders: map[string][]string{"Set-Cookie": {"a=1", "b=2"}},
		Body:              `{"message": "short and stout"}`,
	})

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, []string{"a=1", "b=2"}, w.Header().Values("Set-Cookie"))
	assert.JSONEq(t, `{"message": "short and stout"}`, w.Body.String())
}

func TestLocalServer(t *testing.T) {
	gateway, logs := newTestGateway(t)
	server := httptest.NewServer(handlers.NewLocalServer(gateway))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "local-abc")
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "UP"}`, string(body))
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	finish := logs.FilterMessageSnippet("REQUEST LOG - FINISH - [local-abc]").All()
	require.Len(t, finish, 1)
	assert.Contains(t, finish[0].Message, "200")
}

func TestLocalServer_RouteFailure(t *testing.T) {
	gateway, _ := newTestGateway(t)
	server := httptest.NewServer(handlers.NewLocalServer(gateway))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/panic")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.JSONEq(t, internalErrorBody, string(body))
}
