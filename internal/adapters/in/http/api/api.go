// Package api embeds the OpenAPI document of the HTTP surface and publishes it to
// the Swagger UI.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

var registerOnce sync.Once

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// JSON renders the document as JSON.
func JSON(doc *openapi3.T) ([]byte, error) {
	return json.Marshal(doc)
}

// RegisterSwagger makes doc the document served by the Swagger UI handler. Only
// the first call has an effect.
func RegisterSwagger(doc *openapi3.T) error {
	data, err := JSON(doc)
	if err != nil {
		return err
	}

	registerOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(data),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})
	return nil
}
