package httpvalidator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/schemaset"
)

func TestNewInputValidationError(t *testing.T) {
	records := []schemaset.Record{paramRecord("a"), paramRecord("b"), bodyRecord("c")}

	tests := []struct {
		name         string
		opts         FormatOptions
		wantErrors   int
		wantMessages int
	}{
		{"raw", FormatOptions{}, 3, 0},
		{"first error", FormatOptions{FirstError: true}, 1, 0},
		{"beautify", FormatOptions{Beautify: true}, 0, 3},
		{"both", FormatOptions{Beautify: true, FirstError: true}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewInputValidationError(records, tt.opts)
			assert.Len(t, e.Errors, tt.wantErrors)
			assert.Len(t, e.Messages, tt.wantMessages)
			assert.Equal(t, tt.opts.Beautify, e.Beautify)
			assert.Equal(t, tt.opts.FirstError, e.FirstError)
			assert.Equal(t, tt.wantErrors+tt.wantMessages, e.Len())
		})
	}

	t.Run("input slice is not shared", func(t *testing.T) {
		in := []schemaset.Record{paramRecord("a")}
		e := NewInputValidationError(in, FormatOptions{})
		in[0].Field = "changed"
		assert.Equal(t, "a", e.Errors[0].Field)
	})
}

func TestInputValidationErrorMessage(t *testing.T) {
	one := NewInputValidationError([]schemaset.Record{bodyRecord("name")}, FormatOptions{})
	assert.Equal(t, `input validation error: body/name property "name" is missing`, one.Error())

	many := NewInputValidationError([]schemaset.Record{paramRecord("a"), bodyRecord("c")}, FormatOptions{Beautify: true})
	assert.Equal(t, "input validation error: query/a value must be an integer (and 1 more)", many.Error())

	empty := &InputValidationError{}
	assert.Equal(t, "input validation error", empty.Error())
}

func TestInputValidationErrorIdentity(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewInputValidationError([]schemaset.Record{bodyRecord("name")}, FormatOptions{}))

	assert.True(t, errors.Is(err, oaserrors.ErrInputValidation))
	assert.False(t, errors.Is(err, oaserrors.ErrInvalidUsage))

	var inputErr *InputValidationError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, http.StatusBadRequest, inputErr.StatusCode())
}

func TestInputValidationErrorJSON(t *testing.T) {
	t.Run("raw records", func(t *testing.T) {
		e := NewInputValidationError([]schemaset.Record{bodyRecord("name")}, FormatOptions{})
		data, err := json.Marshal(e)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Input validation error", got["message"])
		errs, ok := got["errors"].([]any)
		require.True(t, ok)
		require.Len(t, errs, 1)
		rec := errs[0].(map[string]any)
		assert.Equal(t, "body", rec["location"])
		assert.Equal(t, "/name", rec["path"])
		assert.Equal(t, "required", rec["keyword"])
	})

	t.Run("messages", func(t *testing.T) {
		e := NewInputValidationError([]schemaset.Record{bodyRecord("name")}, FormatOptions{Beautify: true})
		data, err := json.Marshal(e)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"Input validation error","errors":["body/name property \"name\" is missing"]}`, string(data))
	})

	t.Run("empty", func(t *testing.T) {
		data, err := json.Marshal(&InputValidationError{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"Input validation error","errors":[]}`, string(data))
	})
}
