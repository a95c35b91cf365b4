package codec_test

import (
	"testing"

	"github.com/isometry/folio/internal/codec"
	"github.com/isometry/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		Name            string
		Raw             string
		ExpectedMethod  string
		ExpectedURI     string
		ExpectedVersion string
		ExpectedHeaders map[string]string
		ExpectedKeys    []string
	}{
		{
			Name:            "curl_get",
			Raw:             "GET /about HTTP/1.1\r\nHost: 127.0.0.1:8000\r\nUser-Agent: curl/8.5.0\r\nAccept: */*\r\n\r\n",
			ExpectedMethod:  "GET",
			ExpectedURI:     "/about",
			ExpectedVersion: "HTTP/1.1",
			ExpectedHeaders: map[string]string{"Host": "127.0.0.1:8000", "User-Agent": "curl/8.5.0", "Accept": "*/*"},
			ExpectedKeys:    []string{"Host", "User-Agent", "Accept"},
		},
		{
			Name:            "query_is_kept_raw",
			Raw:             "HEAD /projects?page=%202 HTTP/1.0\r\n\r\n",
			ExpectedMethod:  "HEAD",
			ExpectedURI:     "/projects?page=%202",
			ExpectedVersion: "HTTP/1.0",
			ExpectedHeaders: map[string]string{},
		},
		{
			Name:            "duplicate_header_last_wins",
			Raw:             "GET / HTTP/1.1\r\nX-A: 1\r\nX-B: 2\r\nX-A: 3\r\n\r\n",
			ExpectedMethod:  "GET",
			ExpectedURI:     "/",
			ExpectedVersion: "HTTP/1.1",
			ExpectedHeaders: map[string]string{"X-A": "3", "X-B": "2"},
			ExpectedKeys:    []string{"X-A", "X-B"},
		},
		{
			Name:            "body_is_ignored",
			Raw:             "POST /info HTTP/1.1\r\nContent-Length: 11\r\n\r\nkey: value\r\n",
			ExpectedMethod:  "POST",
			ExpectedURI:     "/info",
			ExpectedVersion: "HTTP/1.1",
			ExpectedHeaders: map[string]string{"Content-Length": "11"},
		},
		{
			Name:            "unknown_method_is_not_validated",
			Raw:             "BREW /pot HTCPCP/1.0\r\n\r\n",
			ExpectedMethod:  "BREW",
			ExpectedURI:     "/pot",
			ExpectedVersion: "HTCPCP/1.0",
			ExpectedHeaders: map[string]string{},
		},
		{
			Name:            "no_terminating_blank_line",
			Raw:             "GET / HTTP/1.1\r\nHost: x",
			ExpectedMethod:  "GET",
			ExpectedURI:     "/",
			ExpectedVersion: "HTTP/1.1",
			ExpectedHeaders: map[string]string{"Host": "x"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req, err := codec.Decode([]byte(tc.Raw))
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedMethod, req.Method)
			assert.Equal(t, tc.ExpectedURI, req.URI)
			assert.Equal(t, tc.ExpectedVersion, req.Version)
			assert.Equal(t, tc.ExpectedHeaders, req.Headers.Map())
			if tc.ExpectedKeys != nil {
				assert.Equal(t, tc.ExpectedKeys, req.Headers.Keys())
			}
			assert.Nil(t, req.Body)
		})
	}
}

func TestDecode_MalformedRequestLine(t *testing.T) {
	testCases := []struct {
		Name string
		Raw  string
	}{
		{Name: "empty", Raw: ""},
		{Name: "method_only", Raw: "GET\r\n\r\n"},
		{Name: "missing_version", Raw: "GET /\r\nHost: x\r\n\r\n"},
		{Name: "too_many_tokens", Raw: "GET /a b HTTP/1.1\r\n\r\n"},
		{Name: "double_space", Raw: "GET  / HTTP/1.1\r\n\r\n"},
		{Name: "bare_lf", Raw: "GET / HTTP/1.1\nHost: x\n\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req, err := codec.Decode([]byte(tc.Raw))
			assert.Nil(t, req)
			var target *codec.MalformedRequestLineError
			assert.ErrorAs(t, err, &target)
		})
	}
}

func TestDecode_MalformedHeader(t *testing.T) {
	testCases := []struct {
		Name          string
		Raw           string
		ExpectedIndex int
	}{
		{Name: "missing_separator", Raw: "GET / HTTP/1.1\r\nHost:x\r\n\r\n", ExpectedIndex: 1},
		{Name: "separator_twice", Raw: "GET / HTTP/1.1\r\nHost: x\r\nX-Note: a: b\r\n\r\n", ExpectedIndex: 2},
		{Name: "no_colon", Raw: "GET / HTTP/1.1\r\ngarbage\r\n\r\n", ExpectedIndex: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := codec.Decode([]byte(tc.Raw))
			var target *codec.MalformedHeaderError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, tc.ExpectedIndex, target.Index)
		})
	}
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		Name     string
		Response *models.Response
		Expected string
	}{
		{
			Name:     "html",
			Response: models.NewResponse(200, "OK", "<h1>hi</h1>", "Content-Type", "text/html", "Content-Length", "11"),
			Expected: "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nContent-Length: 11\r\n\r\n<h1>hi</h1>",
		},
		{
			Name:     "redirect_without_body",
			Response: models.NewResponse(301, "Moved Permanently", "", "Location", "/about"),
			Expected: "HTTP/1.1 301 Moved Permanently\r\nLocation: /about\r\n\r\n",
		},
		{
			Name:     "no_headers",
			Response: &models.Response{Version: "HTTP/1.0", Code: 404, Reason: "Not Found", Text: "x"},
			Expected: "HTTP/1.0 404 Not Found\r\n\r\nx",
		},
		{
			Name:     "malformed_values_are_encoded_as_is",
			Response: &models.Response{Version: "HTTP/9", Code: 999, Reason: "", Headers: models.NewHeaders("X", "")},
			Expected: "HTTP/9 999 \r\nX: \r\n\r\n",
		},
		{
			Name:     "binary_text_verbatim",
			Response: models.NewResponse(200, "OK", "\xff\x00\xfe"),
			Expected: "HTTP/1.1 200 OK\r\n\r\n\xff\x00\xfe",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, string(codec.Encode(tc.Response)))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := []*models.Request{
		{Method: "GET", URI: "/", Version: "HTTP/1.1", Headers: models.NewHeaders()},
		{Method: "GET", URI: "/style.css", Version: "HTTP/1.1", Headers: models.NewHeaders("Host", "localhost", "Accept", "text/css,*/*;q=0.1")},
		{Method: "DELETE", URI: "/a/b?c=d&e", Version: "HTTP/1.0", Headers: models.NewHeaders("x-lower", "v", "X-Lower", "V", "Empty", "")},
	}

	for _, want := range testCases {
		t.Run(want.Method+" "+want.URI, func(t *testing.T) {
			got, err := codec.Decode(codec.EncodeRequest(want))
			require.NoError(t, err)
			assert.Equal(t, want.Method, got.Method)
			assert.Equal(t, want.URI, got.URI)
			assert.Equal(t, want.Version, got.Version)
			assert.Equal(t, want.Headers.Keys(), got.Headers.Keys())
			assert.Equal(t, want.Headers.Map(), got.Headers.Map())
		})
	}
}
