// Package mcp provides an MCP (Model Context Protocol) server adapter for atsfit.
// It lets AI assistants score, extract and render resumes, and read stored analyses.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")
