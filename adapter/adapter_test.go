package adapter

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasguard/oaserrors"
)

func newAdapter(t *testing.T, f Framework, templates ...string) Adapter {
	t.Helper()
	a, err := New(f, Config{Templates: templates})
	require.NoError(t, err)
	return a
}

func TestParseFramework(t *testing.T) {
	tests := []struct {
		input string
		want  Framework
	}{
		{"chi", Chi},
		{"Gin", Gin},
		{" echo ", Echo},
		{"gorilla", Gorilla},
		{"nethttp", NetHTTP},
		{"", NetHTTP},
		{"koa", NetHTTP},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFramework(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	for _, f := range Frameworks() {
		t.Run(string(f), func(t *testing.T) {
			a := newAdapter(t, f)
			assert.Equal(t, f, a.Framework())
		})
	}

	t.Run("unknown framework falls back", func(t *testing.T) {
		a := newAdapter(t, Framework("express"))
		assert.Equal(t, NetHTTP, a.Framework())
	})

	t.Run("negative body size", func(t *testing.T) {
		_, err := New(NetHTTP, Config{MaxBodySize: -1})
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("bad template", func(t *testing.T) {
		_, err := New(NetHTTP, Config{Templates: []string{"pets"}})
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestExtractWrongType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pets", nil)
	natives := map[Framework]any{
		NetHTTP: "not a request",
		Chi:     42,
		Gorilla: nil,
		Gin:     req,
		Echo:    req,
	}

	for f, native := range natives {
		t.Run(string(f), func(t *testing.T) {
			_, err := newAdapter(t, f).Extract(native)
			var usageErr *oaserrors.UsageError
			require.ErrorAs(t, err, &usageErr)
			assert.Contains(t, usageErr.Operation, string(f))
		})
	}
}

// serve routes req through handler registration fn and returns what the
// adapter extracted inside the handler.
func extractVia(t *testing.T, serve func(capture func(any)) http.Handler, a Adapter, req *http.Request) *Descriptor {
	t.Helper()
	var (
		got *Descriptor
		err error
	)
	h := serve(func(native any) {
		got, err = a.Extract(native)
	})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NoError(t, err)
	require.NotNil(t, got, "handler was not reached")
	return got
}

func TestFrameworkTemplates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		framework Framework
		serve     func(capture func(any)) http.Handler
	}{
		{NetHTTP, func(capture func(any)) http.Handler {
			m := http.NewServeMux()
			m.HandleFunc("GET /pets/{petId}/", func(_ http.ResponseWriter, r *http.Request) { capture(r) })
			return m
		}},
		{Chi, func(capture func(any)) http.Handler {
			r := chi.NewRouter()
			r.Get("/pets/{petId:[0-9]+}", func(_ http.ResponseWriter, r *http.Request) { capture(r) })
			return r
		}},
		{Gorilla, func(capture func(any)) http.Handler {
			r := mux.NewRouter()
			r.HandleFunc("/pets/{petId:[0-9]+}", func(_ http.ResponseWriter, r *http.Request) { capture(r) }).Methods(http.MethodGet)
			return r
		}},
		{Gin, func(capture func(any)) http.Handler {
			r := gin.New()
			r.GET("/pets/:petId", func(c *gin.Context) { capture(c) })
			return r
		}},
		{Echo, func(capture func(any)) http.Handler {
			e := echo.New()
			e.GET("/pets/:petId", func(c echo.Context) error { capture(c); return nil })
			return e
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.framework), func(t *testing.T) {
			target := "/pets/42"
			if tt.framework == NetHTTP {
				target = "/pets/42/"
			}
			req := httptest.NewRequest(http.MethodGet, target+"?limit=5", nil)
			d := extractVia(t, tt.serve, newAdapter(t, tt.framework), req)

			assert.Equal(t, "/pets/{petId}", d.Path)
			assert.Equal(t, http.MethodGet, d.Method)
			assert.Equal(t, map[string]string{"petId": "42"}, d.PathParams)
			assert.Equal(t, "5", d.Query["limit"])
			assert.Nil(t, d.Body)
		})
	}
}

func TestNetHTTPWildcardPattern(t *testing.T) {
	a := newAdapter(t, NetHTTP)
	d := extractVia(t, func(capture func(any)) http.Handler {
		m := http.NewServeMux()
		m.HandleFunc("GET example.com/files/{path...}", func(_ http.ResponseWriter, r *http.Request) { capture(r) })
		return m
	}, a, httptest.NewRequest(http.MethodGet, "http://example.com/files/a/b.txt", nil))

	assert.Equal(t, "/files/{path}", d.Path)
	assert.Equal(t, "a/b.txt", d.PathParams["path"])
	assert.Equal(t, "example.com", d.Headers["host"])
}

func TestFallbackMatcher(t *testing.T) {
	a := newAdapter(t, NetHTTP, "/pets", "/pets/{petId}", "/pets/mine")

	tests := []struct {
		path     string
		template string
		params   map[string]string
	}{
		{"/pets", "/pets", map[string]string{}},
		{"/pets/", "/pets", map[string]string{}},
		{"/pets/7", "/pets/{petId}", map[string]string{"petId": "7"}},
		{"/pets/mine", "/pets/mine", map[string]string{}},
		{"/owners/1", "/owners/1", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d, err := a.Extract(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.template, d.Path)
			assert.Equal(t, tt.params, d.PathParams)
		})
	}
}

func TestChiUnroutedRequestFallsBack(t *testing.T) {
	a := newAdapter(t, Chi, "/pets/{petId}")
	d, err := a.Extract(httptest.NewRequest(http.MethodGet, "/pets/3", nil))
	require.NoError(t, err)
	assert.Equal(t, "/pets/{petId}", d.Path)
	assert.Equal(t, "3", d.PathParams["petId"])
}

func TestHeadersAndQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pets?tag=a&tag=b&limit=3&empty=", nil)
	req.Header.Add("X-Api-Key", "secret")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Accept", "text/plain")

	d, err := newAdapter(t, NetHTTP).Extract(req)
	require.NoError(t, err)

	assert.Equal(t, "secret", d.Headers["x-api-key"])
	assert.Equal(t, "application/json, text/plain", d.Headers["accept"])
	assert.Equal(t, []any{"a", "b"}, d.Query["tag"])
	assert.Equal(t, "3", d.Query["limit"])
	assert.Equal(t, "", d.Query["empty"])
}

func TestBodyDecoding(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        any
	}{
		{"json object", "application/json", `{"name":"rex","age":3}`, map[string]any{"name": "rex", "age": 3.0}},
		{"json with charset", "application/json; charset=utf-8", `[1,2]`, []any{1.0, 2.0}},
		{"json variant", "application/merge-patch+json", `{"tag":null}`, map[string]any{"tag": nil}},
		{"form", "application/x-www-form-urlencoded", "username=bob&role=a&role=b", map[string]any{"username": "bob", "role": []any{"a", "b"}}},
		{"text", "text/plain", "hello", "hello"},
		{"no content type", "", "raw", "raw"},
		{"empty", "application/json", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			d, err := newAdapter(t, NetHTTP).Extract(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Body)
		})
	}
}

func TestMalformedJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")

	_, err := newAdapter(t, NetHTTP).Extract(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding JSON body")
}

func TestMultipartBody(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("caption", "rex at the beach"))
	fw, err := w.CreateFormFile("file", "rex.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG"))
	require.NoError(t, err)
	fw, err = w.CreateFormFile("file", "rex2.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/pets/1/photo", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	d, err := newAdapter(t, NetHTTP).Extract(req)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"caption": "rex at the beach"}, d.Body)
	assert.Equal(t, map[string]any{"file": []any{"rex.png", "rex2.png"}}, d.Files)
}

func TestBodyIsRestored(t *testing.T) {
	const payload = `{"name":"rex"}`
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	_, err := newAdapter(t, NetHTTP).Extract(req)
	require.NoError(t, err)

	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestBodySizeLimit(t *testing.T) {
	a, err := New(NetHTTP, Config{MaxBodySize: 8})
	require.NoError(t, err)

	payload := `{"name":"a name that is too long"}`
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	_, err = a.Extract(req)
	var limitErr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, int64(8), limitErr.Limit)
	assert.Equal(t, int64(len(payload)), limitErr.Actual)

	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data), "rejected body is still readable")
}

func TestDescriptorParameters(t *testing.T) {
	d := &Descriptor{
		Path:       "/pets/{petId}",
		Method:     "get",
		PathParams: map[string]string{"petId": "1"},
		Query:      map[string]any{"limit": "5"},
	}

	p := d.Parameters()
	assert.Equal(t, map[string]any{"limit": "5"}, p["query"])
	assert.Equal(t, map[string]any{}, p["headers"])
	assert.Equal(t, map[string]any{"petId": "1"}, p["path"])
	assert.Equal(t, map[string]any{}, p["files"])
}
