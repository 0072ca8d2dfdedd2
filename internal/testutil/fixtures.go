// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// PetstoreOAS3 is an OAS 3.0 document exercising every parameter location,
// JSON, multipart and urlencoded bodies, and an operation with no schemas.
const PetstoreOAS3 = `openapi: "3.0.3"
info:
  title: Petstore
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
            minimum: 1
            maximum: 100
        - name: status
          in: query
          schema:
            type: string
            enum: [available, sold]
        - name: tags
          in: query
          schema:
            type: array
            items:
              type: string
      responses:
        "200":
          description: ok
    post:
      operationId: createPet
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
              $ref: "#/components/schemas/Pet"
      responses:
        "201":
          description: created
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: integer
    get:
      operationId: showPetById
      responses:
        "200":
          description: ok
  /pets/{petId}/photo:
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: integer
    post:
      operationId: uploadPhoto
      requestBody:
        required: true
        content:
          multipart/form-data:
            schema:
              type: object
              required: [file]
              properties:
                file:
                  type: string
                  format: binary
                caption:
                  type: string
                  maxLength: 20
      responses:
        "201":
          description: created
  /login:
    post:
      operationId: login
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [username]
              properties:
                username:
                  type: string
                remember:
                  type: boolean
      responses:
        "200":
          description: ok
  /health:
    get:
      operationId: health
      responses:
        "200":
          description: ok
components:
  schemas:
    Pet:
      type: object
      required: [name]
      additionalProperties: false
      properties:
        name:
          type: string
        tag:
          type: string
        status:
          type: string
          enum: [available, sold]
`

// PetstoreOAS2 is an OAS 2.0 (Swagger) document with query, header and body parameters.
const PetstoreOAS2 = `swagger: "2.0"
info:
  title: Petstore
  version: "1.0.0"
basePath: /v1
consumes:
  - application/json
produces:
  - application/json
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          type: integer
          minimum: 1
      responses:
        200:
          description: ok
    post:
      operationId: createPet
      parameters:
        - name: X-Key
          in: header
          required: true
          type: string
        - name: pet
          in: body
          required: true
          schema:
            $ref: "#/definitions/Pet"
      responses:
        201:
          description: created
definitions:
  Pet:
    type: object
    required: [name]
    properties:
      name:
        type: string
`

// WriteTempFile writes content to name inside a per-test temporary directory.
// Returns the path to the file.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}

// WriteTempYAML marshals a value to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals a value to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	return WriteTempFile(t, "test.json", string(data))
}
