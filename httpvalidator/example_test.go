package httpvalidator_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/erraggy/oasguard/adapter"
	"github.com/erraggy/oasguard/httpvalidator"
	"github.com/erraggy/oasguard/schemaset"
)

const petsYAML = `
openapi: "3.0.3"
info:
  title: Pet Store
  version: "1.0"
paths:
  /pets:
    post:
      parameters:
        - name: X-Key
          in: header
          required: true
          schema:
            type: string
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
      responses:
        "201":
          description: Created
`

func ExampleNewFromData() {
	v, err := httpvalidator.NewFromData([]byte(petsYAML))
	if err != nil {
		fmt.Println("Validator error:", err)
		return
	}

	fmt.Println("Templates:", v.Set().Templates())
	fmt.Println("Framework:", v.Options().Framework)
	// Output:
	// Templates: [/pets]
	// Framework: nethttp
}

func ExampleValidator_Validate() {
	v, err := httpvalidator.NewFromData([]byte(petsYAML), httpvalidator.WithBeautifyErrors(true))
	if err != nil {
		fmt.Println("Validator error:", err)
		return
	}

	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	err = v.Validate(req)
	var inputErr *httpvalidator.InputValidationError
	if errors.As(err, &inputErr) {
		for _, msg := range inputErr.Messages {
			fmt.Println(msg)
		}
	}
	// Output:
	// headers/x-key property "x-key" is missing
	// body/name property "name" is missing
}

func ExampleValidator_ValidateDescriptor() {
	v, err := httpvalidator.NewFromData([]byte(petsYAML), httpvalidator.WithFirstError(true))
	if err != nil {
		fmt.Println("Validator error:", err)
		return
	}

	err = v.ValidateDescriptor(&adapter.Descriptor{
		Path:   "/pets",
		Method: "post",
		Body:   map[string]any{},
	})
	fmt.Println(err)

	// Undeclared endpoints are not validated.
	err = v.ValidateDescriptor(&adapter.Descriptor{Path: "/owners", Method: "get"})
	fmt.Println(err)
	// Output:
	// input validation error: headers/x-key property "x-key" is missing
	// <nil>
}

func ExampleWithErrorFormatter() {
	v, err := httpvalidator.NewFromData([]byte(petsYAML),
		httpvalidator.WithErrorFormatter(func(errs []schemaset.Record, _ httpvalidator.Options) error {
			return fmt.Errorf("%d problems, first at %s", len(errs), errs[0].Target())
		}),
	)
	if err != nil {
		fmt.Println("Validator error:", err)
		return
	}

	fmt.Println(v.ValidateDescriptor(&adapter.Descriptor{Path: "/pets", Method: "POST"}))
	// Output: 2 problems, first at headers/x-key
}
