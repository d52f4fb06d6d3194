package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// ScoreInput is the input schema for the score_resume tool.
type ScoreInput struct {
	ResumeText     string `json:"resume_text" jsonschema:"plain text of the resume"`
	JobDescription string `json:"job_description" jsonschema:"the job description to score against"`
}

// ScoreOutput is the output schema for the score_resume tool.
type ScoreOutput struct {
	Score   float64 `json:"score"`
	Percent int     `json:"percent"`
}

// FileInput carries a base64 encoded PDF or DOCX.
type FileInput struct {
	Filename      string `json:"filename" jsonschema:"file name ending in .pdf or .docx"`
	ContentBase64 string `json:"content_base64" jsonschema:"base64 encoded file bytes"`
}

// ExtractOutput is the output schema for the extract_resume tool.
type ExtractOutput struct {
	Text string `json:"text"`
}

// ParseScoreInput is the input schema for the parse_match_score tool.
type ParseScoreInput struct {
	Text string `json:"text" jsonschema:"analysis text containing a MATCH SCORE: NN% line"`
}

// ParseScoreOutput is the output schema for the parse_match_score tool.
type ParseScoreOutput struct {
	Found   bool `json:"found"`
	Percent int  `json:"percent"`
}

// RenderInput is the input schema for the render_resume tool.
type RenderInput struct {
	Text   string `json:"text" jsonschema:"resume text, one paragraph per line"`
	Format string `json:"format,omitempty" jsonschema:"pdf or docx (default pdf)"`
}

// RenderOutput is the output schema for the render_resume tool.
type RenderOutput struct {
	Filename      string `json:"filename"`
	MIMEType      string `json:"mime_type"`
	ContentBase64 string `json:"content_base64"`
}

// AnalyzeInput is the input schema for the analyze_resume tool.
type AnalyzeInput struct {
	FileInput
	JobDescription string `json:"job_description" jsonschema:"the job description to tailor the resume to"`
	SkipNarrative  bool   `json:"skip_narrative,omitempty" jsonschema:"skip the narrative match analysis"`
}

// AnalysisOutput summarises a stored analysis.
type AnalysisOutput struct {
	ID              string   `json:"id"`
	Filename        string   `json:"filename"`
	InitialScore    int      `json:"initial_score"`
	NewScore        int      `json:"new_score"`
	MatchPercent    int      `json:"match_percent"`
	MatchSource     string   `json:"match_source"`
	Suggestions     string   `json:"suggestions"`
	Narrative       string   `json:"narrative,omitempty"`
	RewrittenResume string   `json:"rewritten_resume"`
	Warnings        []string `json:"warnings,omitempty"`
}

func newAnalysisOutput(a *domain.Analysis) AnalysisOutput {
	return AnalysisOutput{
		ID:              a.ID,
		Filename:        a.Filename,
		InitialScore:    a.InitialScore.Percent(),
		NewScore:        a.NewScore.Percent(),
		MatchPercent:    a.MatchPercent,
		MatchSource:     string(a.MatchSource),
		Suggestions:     a.Suggestions,
		Narrative:       a.Narrative,
		RewrittenResume: a.RewrittenResume,
		Warnings:        a.Warnings,
	}
}

// registerTools registers the document tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_resume",
		Description: "Score resume text against a job description by keyword overlap",
	}, s.handleScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_resume",
		Description: "Extract plain text from a PDF or DOCX resume",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_match_score",
		Description: "Read the percentage from a MATCH SCORE line in an analysis",
	}, s.handleParseScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_resume",
		Description: "Render resume text as a styled DOCX or paginated PDF",
	}, s.handleRender)
}

// registerAnalysisTools registers the pipeline tools. Requires the analysis port.
func (s *Server) registerAnalysisTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_resume",
		Description: "Score, rewrite and store a resume tailored to a job description",
	}, s.handleAnalyze)
}

func (s *Server) handleScore(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ScoreInput,
) (*mcp.CallToolResult, ScoreOutput, error) {
	score := s.ports.Document.Score(input.ResumeText, input.JobDescription)
	return nil, ScoreOutput{Score: score.Float(), Percent: score.Percent()}, nil
}

func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	doc, err := input.document()
	if err != nil {
		return nil, ExtractOutput{}, err
	}
	text, err := s.ports.Document.Extract(ctx, doc)
	if err != nil {
		return nil, ExtractOutput{}, err
	}
	return nil, ExtractOutput{Text: text.String()}, nil
}

func (s *Server) handleParseScore(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseScoreInput,
) (*mcp.CallToolResult, ParseScoreOutput, error) {
	percent, ok := s.ports.Document.ParseMatchScore(input.Text)
	return nil, ParseScoreOutput{Found: ok, Percent: percent}, nil
}

func (s *Server) handleRender(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderInput,
) (*mcp.CallToolResult, RenderOutput, error) {
	format := domain.FormatPDF
	if input.Format != "" {
		format = domain.ParseFormat(input.Format)
	}
	if !format.IsValid() {
		return nil, RenderOutput{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, input.Format)
	}

	doc, err := s.ports.Document.Render(ctx, domain.PlainText(input.Text), format)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	return nil, RenderOutput{
		Filename:      "resume" + format.Extension(),
		MIMEType:      doc.MIMEType,
		ContentBase64: base64.StdEncoding.EncodeToString(doc.Content),
	}, nil
}

func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	doc, err := input.document()
	if err != nil {
		return nil, AnalysisOutput{}, err
	}

	analysis, err := s.ports.Analysis.Analyse(ctx, driving.AnalyseRequest{
		Document:       doc,
		JobDescription: input.JobDescription,
		SkipNarrative:  input.SkipNarrative,
	})
	if err != nil {
		return nil, AnalysisOutput{}, err
	}
	return nil, newAnalysisOutput(analysis), nil
}

// document decodes the file input into a domain document.
func (f FileInput) document() (domain.Document, error) {
	format := domain.FormatFromFilename(f.Filename)
	if !format.IsValid() {
		return domain.Document{}, fmt.Errorf("%w: %q is not a .pdf or .docx file", domain.ErrUnsupportedFormat, f.Filename)
	}
	content, err := base64.StdEncoding.DecodeString(strings.TrimSpace(f.ContentBase64))
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: content_base64: %w", domain.ErrInvalidInput, err)
	}
	return domain.Document{Name: f.Filename, Format: format, Content: content}, nil
}
