// Package docs holds the OpenAPI document served under /api/docs
// regenerate the json with: swag init -g cmd/producescan-api/main.go --v3.1 -o internal/services/api/docs --outputTypes json
package docs

import (
	_ "embed"

	"github.com/swaggo/swag/v2"
)

//go:embed openapi.json
var docTemplate string

// SwaggerInfo carries the values templated into the document
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Title:            "ProduceScan API",
	Description:      "Identifies produce from images, assesses ripeness and joins nutrition facts",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
