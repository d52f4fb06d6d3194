package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

const (
	uriScheme    = "atsfit://"
	analysesURI  = uriScheme + "analyses"
	mimeTypeJSON = "application/json"
)

// registerResources registers the analysis history resources.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         analysesURI,
		Name:        "analyses",
		Description: "Stored resume analyses, newest first",
		MIMEType:    mimeTypeJSON,
	}, s.handleAnalysesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: analysesURI + "/{analysisId}",
		Name:        "analysis",
		Description: "A single stored analysis including the rewritten resume",
		MIMEType:    mimeTypeJSON,
	}, s.handleAnalysisResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: analysesURI + "/{analysisId}/rewritten",
		Name:        "rewritten-resume",
		Description: "The rewritten resume text of a stored analysis",
		MIMEType:    "text/plain",
	}, s.handleRewrittenResource)
}

// analysisSummary is one entry of the analyses listing.
type analysisSummary struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	InitialScore int    `json:"initial_score"`
	NewScore     int    `json:"new_score"`
	MatchPercent int    `json:"match_percent"`
	CreatedAt    string `json:"created_at"`
	URI          string `json:"uri"`
}

func (s *Server) handleAnalysesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	analyses, err := s.ports.Analysis.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}

	summaries := make([]analysisSummary, len(analyses))
	for i := range analyses {
		a := &analyses[i]
		summaries[i] = analysisSummary{
			ID:           a.ID,
			Filename:     a.Filename,
			InitialScore: a.InitialScore.Percent(),
			NewScore:     a.NewScore.Percent(),
			MatchPercent: a.MatchPercent,
			CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
			URI:          analysesURI + "/" + a.ID,
		}
	}
	return jsonResult(req.Params.URI, summaries)
}

func (s *Server) handleAnalysisResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	analysis, err := s.lookup(ctx, req.Params.URI, "")
	if err != nil {
		return nil, err
	}
	return jsonResult(req.Params.URI, newAnalysisOutput(analysis))
}

func (s *Server) handleRewrittenResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	analysis, err := s.lookup(ctx, req.Params.URI, "/rewritten")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     analysis.RewrittenResume,
		}},
	}, nil
}

// lookup resolves the analysis named by uri, mapping unknown ids to a
// resource-not-found error.
func (s *Server) lookup(ctx context.Context, uri, suffix string) (*domain.Analysis, error) {
	id := extractAnalysisID(uri, suffix)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	analysis, err := s.ports.Analysis.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("getting analysis: %w", err)
	}
	return analysis, nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeTypeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractAnalysisID extracts the id from atsfit://analyses/{id}{suffix}.
// The id itself may not contain a slash.
func extractAnalysisID(uri, suffix string) string {
	const prefix = analysesURI + "/"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}
	id := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
