package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/erraggy/oasguard/internal/httputil"
	"github.com/erraggy/oasguard/oaserrors"
)

// readBody reads and decodes the request body, then restores r.Body so the
// next handler sees the same bytes. Multipart file parts are returned as files.
func (e extractor) readBody(r *http.Request) (body any, files map[string]any, err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, e.maxBodySize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("adapter: reading request body: %w", err)
	}
	if int64(len(data)) > e.maxBodySize {
		r.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(data), r.Body), r.Body}
		limitErr := &oaserrors.ResourceLimitError{
			ResourceType: "body_size",
			Limit:        e.maxBodySize,
			Message:      "request body too large",
		}
		if r.ContentLength > e.maxBodySize {
			limitErr.Actual = r.ContentLength
		}
		return nil, nil, limitErr
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))

	if len(data) == 0 {
		return nil, nil, nil
	}
	return decodeBody(r.Header.Get("Content-Type"), data)
}

func decodeBody(contentType string, data []byte) (any, map[string]any, error) {
	mediaType := httputil.MediaType(contentType)
	switch {
	case httputil.IsJSONMediaType(mediaType):
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, nil, fmt.Errorf("adapter: decoding JSON body: %w", err)
		}
		return v, nil, nil
	case mediaType == httputil.MediaTypeForm:
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, nil, fmt.Errorf("adapter: decoding form body: %w", err)
		}
		return valuesToMap(values), nil, nil
	case mediaType == httputil.MediaTypeMultipart:
		return decodeMultipart(contentType, data)
	default:
		return string(data), nil, nil
	}
}

// decodeMultipart returns non-file fields as the body and file parts as
// field name → filename.
func decodeMultipart(contentType string, data []byte) (any, map[string]any, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, nil, fmt.Errorf("adapter: decoding multipart body: %w", err)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, nil, errors.New("adapter: decoding multipart body: missing boundary")
	}

	fields := make(map[string]any)
	files := make(map[string]any)
	reader := multipart.NewReader(bytes.NewReader(data), boundary)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("adapter: decoding multipart body: %w", err)
		}
		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}
		if filename := part.FileName(); filename != "" {
			appendValue(files, name, filename)
			_ = part.Close()
			continue
		}
		value, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("adapter: decoding multipart body: %w", err)
		}
		appendValue(fields, name, string(value))
	}
	return fields, files, nil
}
