package runtime_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/folio/internal/models"
	"github.com/isometry/folio/internal/runtime"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo answers with the request URI and the Host header.
func echo(req *models.Request) (*models.Response, error) {
	switch req.URI {
	case "/fail":
		return nil, errors.New("template missing")
	case "/panic":
		panic("boom")
	case "/nil":
		return nil, nil
	}
	body := req.Method + " " + req.URI + " " + req.Header("Host")
	return models.NewResponse(200, "OK", body, "Content-Length", strconv.Itoa(len(body))), nil
}

func TestDispatch(t *testing.T) {
	testCases := []struct {
		Name         string
		Raw          string
		ExpectedCode int
		ExpectedText string
	}{
		{
			Name:         "valid",
			Raw:          "GET /about HTTP/1.1\r\nHost: localhost\r\n\r\n",
			ExpectedCode: 200,
			ExpectedText: "GET /about localhost",
		},
		{
			Name:         "malformed_request_line",
			Raw:          "GET /\r\n\r\n",
			ExpectedCode: 400,
			ExpectedText: "<h1>400 Bad Request</h1>",
		},
		{
			Name:         "malformed_header",
			Raw:          "GET / HTTP/1.1\r\nHost localhost\r\n\r\n",
			ExpectedCode: 400,
			ExpectedText: "<h1>400 Bad Request</h1>",
		},
		{
			Name:         "handler_error",
			Raw:          "GET /fail HTTP/1.1\r\n\r\n",
			ExpectedCode: 500,
			ExpectedText: "<h1>500 Internal Server Error</h1>",
		},
		{
			Name:         "panic",
			Raw:          "GET /panic HTTP/1.1\r\n\r\n",
			ExpectedCode: 500,
			ExpectedText: "<h1>500 Internal Server Error</h1>",
		},
		{
			Name:         "nil_response",
			Raw:          "GET /nil HTTP/1.1\r\n\r\n",
			ExpectedCode: 500,
			ExpectedText: "<h1>500 Internal Server Error</h1>",
		},
	}

	rt := runtime.NewRuntime(echo)
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			resp := rt.Dispatch([]byte(tc.Raw))
			require.NotNil(t, resp)
			assert.Equal(t, tc.ExpectedCode, resp.Code)
			assert.Equal(t, tc.ExpectedText, resp.Text)
			assert.Equal(t, strconv.Itoa(len(tc.ExpectedText)), resp.Headers.Value("Content-Length"))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	resp := runtime.ErrorResponse(400)
	assert.Equal(t, "HTTP/1.1", resp.Version)
	assert.Equal(t, "Bad Request", resp.Reason)
	assert.Equal(t, []string{"Content-Type", "Content-Length", "Connection"}, resp.Headers.Keys())
	assert.Equal(t, "close", resp.Headers.Value("Connection"))
}

func exchange(t *testing.T, rt *runtime.Runtime, raw string) string {
	t.Helper()
	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		rt.ServeConn(server)
	}()

	if raw == "" {
		require.NoError(t, client.Close())
		<-done
		return ""
	}

	// the server may close before consuming the whole request
	go func() { _, _ = client.Write([]byte(raw)) }()
	out, err := io.ReadAll(client)
	require.NoError(t, err)
	<-done
	return string(out)
}

func TestServeConn(t *testing.T) {
	rt := runtime.NewRuntime(echo)
	out := exchange(t, rt, "GET / HTTP/1.1\r\nHost: example.org\r\n\r\n")
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 17\r\n\r\nGET / example.org", out)
}

func TestServeConn_EmptyRead(t *testing.T) {
	called := false
	rt := runtime.NewRuntime(func(*models.Request) (*models.Response, error) {
		called = true
		return models.NewResponse(200, "OK", ""), nil
	})
	assert.Empty(t, exchange(t, rt, ""))
	assert.False(t, called)
}

func TestServeConn_ReadBufferSize(t *testing.T) {
	rt := runtime.NewRuntime(echo, runtime.WithReadBufferSize(8), runtime.WithTimeout(time.Second))
	out := exchange(t, rt, "GET /about HTTP/1.1\r\nHost: localhost\r\n\r\n")
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\nContent-Type: text/html\r\nContent-Length: 24\r\nConnection: close\r\n\r\n<h1>400 Bad Request</h1>", out)
}

func TestHandleEvent(t *testing.T) {
	testCases := []struct {
		Name        string
		PayloadType string
		Payload     any
		Check       func(t *testing.T, resp any)
	}{
		{
			Name:        "api_gateway_v2",
			PayloadType: runtime.PayloadTypeAPIGatewayV2,
			Payload: events.APIGatewayV2HTTPRequest{
				RawPath:        "/projects",
				RawQueryString: "page=2",
				Headers:        map[string]string{"Host": "example.org"},
				RequestContext: events.APIGatewayV2HTTPRequestContext{
					HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: "GET"},
				},
			},
			Check: func(t *testing.T, resp any) {
				r, ok := resp.(events.APIGatewayV2HTTPResponse)
				require.True(t, ok)
				assert.Equal(t, 200, r.StatusCode)
				assert.Equal(t, "GET /projects?page=2 example.org", r.Body)
				assert.False(t, r.IsBase64Encoded)
			},
		},
		{
			Name:        "api_gateway_v1",
			PayloadType: runtime.PayloadTypeAPIGatewayV1,
			Payload: events.APIGatewayProxyRequest{
				HTTPMethod:            "GET",
				Path:                  "/about",
				QueryStringParameters: map[string]string{"b": "2", "a": "1"},
				Headers:               map[string]string{"Host": "example.org"},
			},
			Check: func(t *testing.T, resp any) {
				r, ok := resp.(events.APIGatewayProxyResponse)
				require.True(t, ok)
				assert.Equal(t, 200, r.StatusCode)
				assert.Equal(t, "GET /about?a=1&b=2 example.org", r.Body)
			},
		},
		{
			Name:        "lambda_url",
			PayloadType: runtime.PayloadTypeLambdaURL,
			Payload: events.LambdaFunctionURLRequest{
				RawPath: "/fail",
				RequestContext: events.LambdaFunctionURLRequestContext{
					HTTP: events.LambdaFunctionURLRequestContextHTTPDescription{Method: "GET"},
				},
			},
			Check: func(t *testing.T, resp any) {
				r, ok := resp.(events.LambdaFunctionURLResponse)
				require.True(t, ok)
				assert.Equal(t, 500, r.StatusCode)
				assert.Equal(t, "text/html", r.Headers["Content-Type"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			payload, err := json.Marshal(tc.Payload)
			require.NoError(t, err)

			rt := runtime.NewRuntime(echo, runtime.WithPayloadType(tc.PayloadType))
			resp, err := rt.HandleEvent(context.Background(), payload)
			require.NoError(t, err)
			tc.Check(t, resp)
		})
	}
}

func TestHandleEvent_EncodedBody(t *testing.T) {
	rt := runtime.NewRuntime(func(*models.Request) (*models.Response, error) {
		return models.NewResponse(200, "OK", "\x1f\x8b\x00binary", "Content-Encoding", "gzip"), nil
	})
	payload, err := json.Marshal(events.APIGatewayV2HTTPRequest{RawPath: "/"})
	require.NoError(t, err)

	resp, err := rt.HandleEvent(context.Background(), payload)
	require.NoError(t, err)
	r := resp.(events.APIGatewayV2HTTPResponse)
	assert.True(t, r.IsBase64Encoded)
	decoded, err := base64.StdEncoding.DecodeString(r.Body)
	require.NoError(t, err)
	assert.Equal(t, "\x1f\x8b\x00binary", string(decoded))
}

func TestHandleEvent_Errors(t *testing.T) {
	_, err := runtime.NewRuntime(echo, runtime.WithPayloadType("sqs")).HandleEvent(context.Background(), json.RawMessage(`{}`))
	assert.ErrorContains(t, err, "unsupported lambda payload type: sqs")

	_, err = runtime.NewRuntime(echo).HandleEvent(context.Background(), json.RawMessage(`[`))
	assert.Error(t, err)
}

func TestFromAPIGatewayV2_DefaultsPath(t *testing.T) {
	req := runtime.FromAPIGatewayV2(events.APIGatewayV2HTTPRequest{
		Headers: map[string]string{"b": "2", "a": "1"},
	})
	assert.Equal(t, "/", req.URI)
	assert.Equal(t, "HTTP/1.1", req.Version)
	assert.Equal(t, []string{"a", "b"}, req.Headers.Keys())
}
