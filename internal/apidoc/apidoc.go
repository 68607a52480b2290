// Package apidoc builds the OpenAPI description of the HTTP API.
package apidoc

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/foodsaid/qrgen/internal/config"
	"github.com/foodsaid/qrgen/internal/model"
)

const (
	Title       = "QR/Barcode Generation API"
	Description = "A lightweight microservice for generating QR codes and barcodes"
	Contact     = "admin@foodsaid.com"

	TagGenerate = "generate"
	TagHealth   = "health"
)

// New describes the service as configured by cfg. Server URLs are derived
// from the configured host and schemes.
func New(cfg config.Config, version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       Title,
			Description: Description,
			Version:     version,
			Contact:     &openapi3.Contact{Email: Contact},
		},
		Tags: openapi3.Tags{
			{Name: TagGenerate, Description: "Code generation endpoints"},
			{Name: TagHealth, Description: "Health check endpoints"},
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/generate", &openapi3.PathItem{Get: generateOperation(cfg.Limits)}),
			openapi3.WithPath("/health", &openapi3.PathItem{Get: healthOperation()}),
			openapi3.WithPath("/metrics", &openapi3.PathItem{Get: metricsOperation()}),
		),
	}

	for _, scheme := range cfg.SwaggerSchemes {
		scheme = strings.TrimSpace(scheme)
		if scheme == "" {
			continue
		}
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: scheme + "://" + cfg.SwaggerHost + "/"})
	}

	return doc
}

func generateOperation(limits config.Limits) *openapi3.Operation {
	names := make([]any, 0, len(model.Kinds()))
	for _, name := range model.KindNames() {
		names = append(names, name)
	}

	content := openapi3.NewQueryParameter("content").
		WithRequired(true).
		WithDescription("Text content to encode.\n" +
			"- QR code: max " + strconv.Itoa(limits.MaxContentLength) + " chars, supports any text\n" +
			"- Barcode: max " + strconv.Itoa(limits.BarcodeMaxLength) + " chars, ASCII characters only").
		WithSchema(openapi3.NewStringSchema())
	content.Example = "Hello World"

	kind := openapi3.NewQueryParameter("type").
		WithDescription("Type of code to generate").
		WithSchema(openapi3.NewStringSchema().WithEnum(names...).WithDefault(model.DefaultType))

	op := openapi3.NewOperation()
	op.OperationID = "generateCode"
	op.Summary = "Generate QR code or barcode based on user input"
	op.Tags = []string{TagGenerate}
	op.Parameters = openapi3.Parameters{
		{Value: content},
		{Value: kind},
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Successfully generated image").
			WithContent(openapi3.NewContentWithSchema(
				openapi3.NewStringSchema().WithFormat("binary"),
				[]string{model.ContentTypePNG},
			))}),
		openapi3.WithStatus(http.StatusBadRequest, textResponse("Invalid input parameters")),
		openapi3.WithStatus(http.StatusTooManyRequests, textResponse("Rate limit exceeded")),
		openapi3.WithStatus(http.StatusInternalServerError, textResponse("Internal server error")),
	)
	return op
}

func healthOperation() *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "healthCheck"
	op.Summary = "Health check endpoint for monitoring and container orchestration"
	op.Tags = []string{TagHealth}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, textResponse("Service is healthy")),
	)
	return op
}

func metricsOperation() *openapi3.Operation {
	cfgSchema := openapi3.NewObjectSchema().
		WithProperty("max_content_length", openapi3.NewIntegerSchema()).
		WithProperty("barcode_max_length", openapi3.NewIntegerSchema()).
		WithProperty("rate_limit", openapi3.NewStringSchema()).
		WithProperty("allowed_types", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))

	schema := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema()).
		WithProperty("version", openapi3.NewStringSchema()).
		WithProperty("config", cfgSchema)

	op := openapi3.NewOperation()
	op.OperationID = "metrics"
	op.Summary = "Basic metrics endpoint for monitoring"
	op.Tags = []string{TagHealth}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Service metrics").
			WithJSONSchema(schema)}),
	)
	return op
}

func textResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"}))}
}
