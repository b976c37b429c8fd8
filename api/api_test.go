package api

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0xalexb/hjarta-field/extract"
	"github.com/0xalexb/hjarta-field/listener"
	"github.com/0xalexb/hjarta-field/listener/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(cfg listener.Config) http.Handler {
	return NewRouter(NewHandler(extract.New(), slog.New(slog.DiscardHandler)), cfg)
}

func post(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func encode(t *testing.T, req ExtractRequest) string {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, json.NewEncoder(&buf).Encode(req))

	return buf.String()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var body ErrorResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(listener.Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestExtract_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		request  ExtractRequest
		expected string
	}{
		{
			name:     "json string",
			request:  ExtractRequest{FileName: "package.json", Content: `{"version": "1.2.3"}`, Field: "version"},
			expected: `{"output":"1.2.3","found":true}`,
		},
		{
			name:     "toml table",
			request:  ExtractRequest{FileName: "Cargo.toml", Content: "[package]\nname = \"field\"\nedition = 2021", Field: "package"},
			expected: `{"output":{"edition":2021,"name":"field"},"found":true}`,
		},
		{
			name:     "yaml sequence item",
			request:  ExtractRequest{FileName: "action.yml", Content: "steps:\n  - uses: a\n  - uses: <b>\n", Field: "steps[1]"},
			expected: `{"output":{"uses":"<b>"},"found":true}`,
		},
		{
			name:     "missing field",
			request:  ExtractRequest{FileName: "a.json", Content: `{}`, Field: "nope"},
			expected: `{"output":null,"found":false}`,
		},
		{
			name:     "empty content",
			request:  ExtractRequest{FileName: "a.json", Content: "", Field: "a"},
			expected: `{"output":null,"found":false}`,
		},
		{
			name:     "empty field returns the document",
			request:  ExtractRequest{FileName: "a.json5", Content: `[1, 2,]`, Field: ""},
			expected: `{"output":[1,2],"found":true}`,
		},
	}

	router := newTestRouter(listener.Config{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := post(t, router, encode(t, tt.request))

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expected, rec.Body.String())
		})
	}
}

func TestExtract_ExtractionFailure(t *testing.T) {
	t.Parallel()

	router := newTestRouter(listener.Config{})

	t.Run("field syntax", func(t *testing.T) {
		t.Parallel()

		rec := post(t, router, encode(t, ExtractRequest{FileName: "a.json", Content: `{}`, Field: "items[0"}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t, `unable to parse field "items[0": missing closing bracket at 6`, body.Error)
		assert.Equal(t, string(extract.StageField), body.Stage)
		assert.Empty(t, body.Trace)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("undecodable content", func(t *testing.T) {
		t.Parallel()

		rec := post(t, router, encode(t, ExtractRequest{FileName: "a.json", Content: "{\n  \"a\": [1,\n", Field: "a"}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decodeError(t, rec)
		assert.True(t, strings.HasPrefix(body.Error, `unable to parse data for "a.json": no parser were able read the content:`))
		assert.Equal(t, string(extract.StageDecode), body.Stage)
		require.NotEmpty(t, body.Trace)
		assert.Equal(t, `successfully parsed field into keys: ["a"]`, body.Trace[0])
		assert.Equal(t, `successfully read file at "a.json" into a buffer`, body.Trace[1])
	})

	t.Run("key after index", func(t *testing.T) {
		t.Parallel()

		rec := post(t, router, encode(t, ExtractRequest{
			FileName: "action.yml",
			Content:  "steps:\n  - uses: a\n  - uses: b\n",
			Field:    "steps[1].uses",
		}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t,
			`unable to extract field from data: unable to read key "uses" on object undefined: cannot index undefined`,
			body.Error)
		assert.Equal(t, string(extract.StageExtract), body.Stage)
		assert.Contains(t, body.Trace, `successfully parsed field into keys: ["steps",1,"","uses"]`)
	})

	t.Run("scalar access", func(t *testing.T) {
		t.Parallel()

		rec := post(t, router, encode(t, ExtractRequest{FileName: "a.json", Content: `{"a": 1}`, Field: "a.b"}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t,
			`unable to extract field from data: unable to read key "b" on object 1: cannot index number`,
			decodeError(t, rec).Error)
	})
}

func TestExtract_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "not json", body: `file_name=a`, message: "invalid request body: "},
		{name: "unknown field", body: `{"file_name":"a","content":"{}","extra":1}`, message: "invalid request body: "},
		{name: "missing file name", body: `{"content":"{}","field":"a"}`, message: `invalid request: file_name failed "required"`},
		{
			name:    "file name too long",
			body:    `{"file_name":"` + strings.Repeat("a", 4097) + `","content":"{}"}`,
			message: `invalid request: file_name failed "max"`,
		},
	}

	router := newTestRouter(listener.Config{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := post(t, router, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.True(t, strings.HasPrefix(decodeError(t, rec).Error, tt.message), decodeError(t, rec).Error)
		})
	}
}

func TestExtract_BodyTooLarge(t *testing.T) {
	t.Parallel()

	router := newTestRouter(listener.Config{MaxBodyBytes: 64})
	body := encode(t, ExtractRequest{FileName: "a.json", Content: strings.Repeat(" ", 100) + "{}"})

	t.Run("declared length", func(t *testing.T) {
		t.Parallel()

		rec := post(t, router, body)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("streamed", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(body))
		req.ContentLength = -1

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "request body too large", decodeError(t, rec).Error)
	})
}

func TestExtract_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(listener.Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/extract", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExtract_RateLimited(t *testing.T) {
	t.Parallel()

	router := newTestRouter(listener.Config{RateLimit: 0.001, RateBurst: 2})
	body := encode(t, ExtractRequest{FileName: "a.json", Content: `{"a":1}`, Field: "a"})

	for range 2 {
		require.Equal(t, http.StatusOK, post(t, router, body).Code)
	}

	rec := post(t, router, body)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	errBody := decodeError(t, rec)
	assert.Equal(t, "too many requests", errBody.Error)
	assert.NotEmpty(t, errBody.RequestID)

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestExtract_Compressed(t *testing.T) {
	t.Parallel()

	content := `{"items": [` + strings.TrimSuffix(strings.Repeat(`"entry",`, 100), ",") + `]}`
	body := encode(t, ExtractRequest{FileName: "a.json", Content: content, Field: ""})

	send := func(router http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(body))
		req.Header.Set("Accept-Encoding", "gzip")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	t.Run("enabled", func(t *testing.T) {
		t.Parallel()

		rec := send(newTestRouter(listener.Config{}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

		reader, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)

		plain, err := io.ReadAll(reader)
		require.NoError(t, err)

		var response struct {
			Output map[string][]string `json:"output"`
			Found  bool                `json:"found"`
		}

		require.NoError(t, json.Unmarshal(plain, &response))
		assert.True(t, response.Found)
		assert.Len(t, response.Output["items"], 100)
	})

	t.Run("small responses stay plain", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/v1/extract",
			strings.NewReader(encode(t, ExtractRequest{FileName: "a.json", Content: `{"a":1}`, Field: "a"})))
		req.Header.Set("Accept-Encoding", "gzip")

		rec := httptest.NewRecorder()
		newTestRouter(listener.Config{}).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.JSONEq(t, `{"output":1,"found":true}`, rec.Body.String())
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		rec := send(newTestRouter(listener.Config{DisableCompression: true}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Contains(t, rec.Body.String(), `"found":true`)
	})
}
