package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/samber/lo"
)

// PublicIdentity is used when the authorizer did not supply a username.
const PublicIdentity = "public@acm.illinois.edu"

// RequestInfo is the per-invocation view of a gateway event used for access logging.
type RequestInfo struct {
	RequestID   string
	Path        string
	HTTPMethod  string
	Protocol    string
	RequestTime string
	SourceIP    string
	UserAgent   string
	Username    string
	QueryParams map[string]string
}

// NewRequestInfo extracts the request context from a gateway event.
// A missing or non-string authorizer username is replaced by PublicIdentity.
func NewRequestInfo(event events.APIGatewayProxyRequest) RequestInfo {
	rc := event.RequestContext

	path := rc.Path
	if path == "" {
		path = event.Path
	}

	return RequestInfo{
		RequestID:   rc.RequestID,
		Path:        path,
		HTTPMethod:  rc.HTTPMethod,
		Protocol:    rc.Protocol,
		RequestTime: rc.RequestTime,
		SourceIP:    rc.Identity.SourceIP,
		UserAgent:   rc.Identity.UserAgent,
		Username:    usernameFromAuthorizer(rc.Authorizer),
		QueryParams: event.QueryStringParameters,
	}
}

func usernameFromAuthorizer(authorizer map[string]interface{}) string {
	username, ok := authorizer["username"].(string)
	if !ok || username == "" {
		return PublicIdentity
	}
	return username
}

// FullPath returns the path followed by the query parameters, keys sorted.
func (r RequestInfo) FullPath() string {
	if len(r.QueryParams) == 0 {
		return r.Path
	}

	keys := lo.Keys(r.QueryParams)
	slices.Sort(keys)

	pairs := lo.Map(keys, func(k string, _ int) string {
		return k + "=" + r.QueryParams[k]
	})
	return r.Path + "?" + strings.Join(pairs, "&")
}

// StartLine formats the access-log line written before a request is resolved.
func (r RequestInfo) StartLine() string {
	return fmt.Sprintf("REQUEST LOG - START - [%s] %s: (%s) - [%s] \"%s %s %s\" %s",
		r.RequestID, r.SourceIP, r.Username, r.RequestTime,
		r.HTTPMethod, r.FullPath(), r.Protocol, r.UserAgent)
}

// FinishLine formats the access-log line written once the response is known.
func (r RequestInfo) FinishLine(statusCode int) string {
	return fmt.Sprintf("REQUEST LOG - FINISH - [%s] finished with status code %d", r.RequestID, statusCode)
}
