// Package openapi builds typed forms from OpenAPI 3 documents: the request
// body schema of a chosen operation maps onto builder fields, with
// validators derived from the schema's constraints.
package openapi
