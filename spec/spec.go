// Package spec embeds the OpenAPI document for the GlobeTrotter API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary keeps the published API description in sync
// with the running code.
//
//go:embed openapi.yaml
var OpenAPI []byte
