package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"maps"
	"net/url"
	"slices"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/folio/internal/models"
	"github.com/pkg/errors"
)

// Supported Lambda payload types.
const (
	PayloadTypeAPIGatewayV1 = "api-gateway-v1"
	PayloadTypeAPIGatewayV2 = "api-gateway-v2"
	PayloadTypeLambdaURL    = "lambda-url"
)

// PayloadTypes lists every supported Lambda payload type.
var PayloadTypes = []string{PayloadTypeAPIGatewayV1, PayloadTypeAPIGatewayV2, PayloadTypeLambdaURL}

// HandleEvent is the Lambda handler for the runtime.
// The payload is decoded according to the configured payload type and answered with the matching response type.
func (r *Runtime) HandleEvent(_ context.Context, payload json.RawMessage) (any, error) {
	switch r.payloadType {
	case PayloadTypeAPIGatewayV1:
		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v1 payload")
		}
		status, headers, body, encoded := lambdaResponse(r.respond(FromAPIGatewayV1(event)))
		return events.APIGatewayProxyResponse{StatusCode: status, Headers: headers, Body: body, IsBase64Encoded: encoded}, nil
	case PayloadTypeAPIGatewayV2:
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v2 payload")
		}
		status, headers, body, encoded := lambdaResponse(r.respond(FromAPIGatewayV2(event)))
		return events.APIGatewayV2HTTPResponse{StatusCode: status, Headers: headers, Body: body, IsBase64Encoded: encoded}, nil
	case PayloadTypeLambdaURL:
		var event events.LambdaFunctionURLRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode Lambda function URL payload")
		}
		status, headers, body, encoded := lambdaResponse(r.respond(FromLambdaURL(event)))
		return events.LambdaFunctionURLResponse{StatusCode: status, Headers: headers, Body: body, IsBase64Encoded: encoded}, nil
	default:
		return nil, errors.Errorf("unsupported lambda payload type: %s", r.payloadType)
	}
}

// FromAPIGatewayV1 converts a REST API proxy event into a request.
func FromAPIGatewayV1(event events.APIGatewayProxyRequest) *models.Request {
	query := url.Values{}
	for k, v := range event.QueryStringParameters {
		query.Set(k, v)
	}
	for k, vs := range event.MultiValueQueryStringParameters {
		query[k] = vs
	}
	return newRequest(event.HTTPMethod, event.Path, query.Encode(), event.Headers)
}

// FromAPIGatewayV2 converts an HTTP API event into a request.
func FromAPIGatewayV2(event events.APIGatewayV2HTTPRequest) *models.Request {
	return newRequest(event.RequestContext.HTTP.Method, event.RawPath, event.RawQueryString, event.Headers)
}

// FromLambdaURL converts a function URL event into a request.
func FromLambdaURL(event events.LambdaFunctionURLRequest) *models.Request {
	return newRequest(event.RequestContext.HTTP.Method, event.RawPath, event.RawQueryString, event.Headers)
}

func newRequest(method, path, rawQuery string, headers map[string]string) *models.Request {
	if path == "" {
		path = "/"
	}
	uri := path
	if rawQuery != "" {
		uri += "?" + rawQuery
	}

	h := models.NewHeaders()
	for _, k := range slices.Sorted(maps.Keys(headers)) {
		h.Set(k, headers[k])
	}
	return &models.Request{Method: method, URI: uri, Version: models.DefaultVersion, Headers: h}
}

// lambdaResponse flattens resp. Encoded bodies are base64 encoded as Lambda requires.
func lambdaResponse(resp *models.Response) (status int, headers map[string]string, body string, encoded bool) {
	body = resp.Text
	if resp.Headers.Has("Content-Encoding") {
		body, encoded = base64.StdEncoding.EncodeToString([]byte(resp.Text)), true
	}
	return resp.Code, resp.Headers.Map(), body, encoded
}
