package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
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

	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/httpvalidator"
	"github.com/erraggy/oasguard/internal/testutil"
	"github.com/erraggy/oasguard/middleware"
	"github.com/erraggy/oasguard/oaserrors"
)

type errorBody struct {
	Message string            `json:"message"`
	Errors  []json.RawMessage `json:"errors"`
}

func newValidator(t *testing.T, framework adapter.Framework) *httpvalidator.Validator {
	t.Helper()
	v, err := httpvalidator.NewFromData([]byte(testutil.PetstoreOAS3), httpvalidator.WithFramework(framework))
	require.NoError(t, err)
	return v
}

// createPet echoes the request body so tests can check it survived validation.
func createPet(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(data)
}

func routers(t *testing.T) map[adapter.Framework]http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	std := http.NewServeMux()
	std.Handle("POST /pets", middleware.HTTP(newValidator(t, adapter.NetHTTP))(http.HandlerFunc(createPet)))

	c := chi.NewRouter()
	c.With(middleware.HTTP(newValidator(t, adapter.Chi))).Post("/pets", createPet)

	g := mux.NewRouter()
	g.Use(middleware.HTTP(newValidator(t, adapter.Gorilla)))
	g.HandleFunc("/pets", createPet).Methods(http.MethodPost)

	gn := gin.New()
	gn.POST("/pets", middleware.Gin(newValidator(t, adapter.Gin)), func(c *gin.Context) {
		createPet(c.Writer, c.Request)
	})

	e := echo.New()
	e.POST("/pets", func(c echo.Context) error {
		createPet(c.Response(), c.Request())
		return nil
	}, middleware.Echo(newValidator(t, adapter.Echo)))

	return map[adapter.Framework]http.Handler{
		adapter.NetHTTP: std,
		adapter.Chi:     c,
		adapter.Gorilla: g,
		adapter.Gin:     gn,
		adapter.Echo:    e,
	}
}

func petRequest(body, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Key", key)
	}
	return req
}

func TestMiddlewareRejectsInvalidRequest(t *testing.T) {
	for framework, h := range routers(t) {
		t.Run(string(framework), func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, petRequest(`{}`, ""))

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Input validation error", body.Message)
			assert.Len(t, body.Errors, 2)
		})
	}
}

func TestMiddlewarePassesValidRequest(t *testing.T) {
	for framework, h := range routers(t) {
		t.Run(string(framework), func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, petRequest(`{"name":"rex"}`, "secret"))

			assert.Equal(t, http.StatusCreated, rec.Code)
			assert.JSONEq(t, `{"name":"rex"}`, rec.Body.String())
		})
	}
}

func TestMiddlewareMalformedBody(t *testing.T) {
	for framework, h := range routers(t) {
		t.Run(string(framework), func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, petRequest(`{"name":`, "secret"))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMiddlewareUnknownRoutePassesThrough(t *testing.T) {
	v := newValidator(t, adapter.Chi)
	r := chi.NewRouter()
	r.With(middleware.HTTP(v)).Put("/owners", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/owners", strings.NewReader(`"anything"`)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWithErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen error
	handler := middleware.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
		seen = err
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	t.Run("net/http", func(t *testing.T) {
		seen = nil
		m := http.NewServeMux()
		m.Handle("POST /pets", middleware.HTTP(newValidator(t, adapter.NetHTTP), handler)(http.HandlerFunc(createPet)))

		rec := httptest.NewRecorder()
		m.ServeHTTP(rec, petRequest(`{}`, ""))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.ErrorIs(t, seen, oaserrors.ErrInputValidation)
	})

	t.Run("gin", func(t *testing.T) {
		seen = nil
		r := gin.New()
		reached := false
		r.POST("/pets", middleware.Gin(newValidator(t, adapter.Gin), handler), func(*gin.Context) { reached = true })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, petRequest(`{}`, ""))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.False(t, reached)
		assert.ErrorIs(t, seen, oaserrors.ErrInputValidation)
	})

	t.Run("echo", func(t *testing.T) {
		seen = nil
		e := echo.New()
		e.POST("/pets", func(echo.Context) error { return errors.New("unreachable") },
			middleware.Echo(newValidator(t, adapter.Echo), handler))

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, petRequest(`{}`, ""))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.ErrorIs(t, seen, oaserrors.ErrInputValidation)
	})
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input validation", httpvalidator.NewInputValidationError(nil, httpvalidator.FormatOptions{}), http.StatusBadRequest},
		{"body too large", &oaserrors.ResourceLimitError{ResourceType: "body_size", Limit: 1}, http.StatusRequestEntityTooLarge},
		{"usage", &oaserrors.UsageError{Operation: "adapter.gin.Extract"}, http.StatusInternalServerError},
		{"config", &oaserrors.ConfigError{Option: "framework"}, http.StatusInternalServerError},
		{"other", errors.New("adapter: decoding JSON body"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, middleware.StatusCode(tt.err))
		})
	}
}

func TestBody(t *testing.T) {
	t.Run("marshaler is used as-is", func(t *testing.T) {
		err := httpvalidator.NewInputValidationError(nil, httpvalidator.FormatOptions{})
		data, mErr := json.Marshal(middleware.Body(err))
		require.NoError(t, mErr)
		assert.JSONEq(t, `{"message":"Input validation error","errors":[]}`, string(data))
	})

	t.Run("plain error", func(t *testing.T) {
		data, err := json.Marshal(middleware.Body(errors.New("boom")))
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"boom"}`, string(data))
	})
}

func TestBodyLimitReturns413(t *testing.T) {
	v, err := httpvalidator.NewFromData([]byte(testutil.PetstoreOAS3),
		httpvalidator.WithFramework(adapter.Chi),
		httpvalidator.WithMaxBodySize(8))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.With(middleware.HTTP(v)).Post("/pets", createPet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, petRequest(`{"name":"a very long name"}`, "secret"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
