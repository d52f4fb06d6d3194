package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// AnalysisResponse is the JSON shape of an analysis.
type AnalysisResponse struct {
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
	CreatedAt       string   `json:"created_at"`
}

func newAnalysisResponse(a *domain.Analysis) AnalysisResponse {
	return AnalysisResponse{
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
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ScoreRequest scores raw resume text, or an uploaded resume, against a job description.
type ScoreRequest struct {
	ResumeText     string `json:"resume_text" form:"resume_text"`
	JobDescription string `json:"job_description" form:"job_description"`
}

// ScoreResponse carries a lexical score.
type ScoreResponse struct {
	Score   float64 `json:"score"`
	Percent int     `json:"percent"`
}

// RenderRequest renders plain text.
type RenderRequest struct {
	Text   string `json:"text" form:"text"`
	Format string `json:"format" form:"format"`
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	jd := c.FormValue("job_description")
	if strings.TrimSpace(jd) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_description is required")
	}

	doc, err := uploadedDocument(c, "resume")
	if err != nil {
		return err
	}

	analysis, err := s.ports.Analysis.Analyse(c.UserContext(), driving.AnalyseRequest{
		Document:       doc,
		JobDescription: jd,
		SkipNarrative:  c.QueryBool("skip_narrative"),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newAnalysisResponse(analysis))
}

func (s *Server) handleListAnalyses(c *fiber.Ctx) error {
	analyses, err := s.ports.Analysis.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]AnalysisResponse, 0, len(analyses))
	for i := range analyses {
		out = append(out, newAnalysisResponse(&analyses[i]))
	}
	return c.JSON(out)
}

func (s *Server) handleGetAnalysis(c *fiber.Ctx) error {
	analysis, err := s.ports.Analysis.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newAnalysisResponse(analysis))
}

func (s *Server) handleDeleteAnalysis(c *fiber.Ctx) error {
	if err := s.ports.Analysis.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	format := domain.ParseFormat(c.Params("format"))
	if !format.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unsupported format %q", c.Params("format")))
	}

	doc, err := s.ports.Analysis.Download(c.UserContext(), c.Params("id"), format, c.QueryBool("original"))
	if err != nil {
		return err
	}
	return sendDocument(c, doc)
}

func (s *Server) handleScore(c *fiber.Ctx) error {
	var req ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_description is required")
	}

	if req.ResumeText == "" {
		doc, err := uploadedDocument(c, "resume")
		if err != nil {
			return err
		}
		text, err := s.ports.Document.Extract(c.UserContext(), doc)
		if err != nil {
			return err
		}
		req.ResumeText = text.String()
	}

	score := s.ports.Document.Score(req.ResumeText, req.JobDescription)
	return c.JSON(ScoreResponse{Score: score.Float(), Percent: score.Percent()})
}

func (s *Server) handleRender(c *fiber.Ctx) error {
	var req RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	format := domain.ParseFormat(req.Format)
	if !format.IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unsupported format %q", req.Format))
	}

	doc, err := s.ports.Document.Render(c.UserContext(), domain.PlainText(req.Text), format)
	if err != nil {
		return err
	}
	doc.Filename = "resume" + format.Extension()
	return sendDocument(c, doc)
}

// uploadedDocument reads a PDF or DOCX from a multipart field.
func uploadedDocument(c *fiber.Ctx, field string) (domain.Document, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return domain.Document{}, fiber.NewError(fiber.StatusBadRequest, field+" file is required")
	}

	format := domain.FormatFromFilename(header.Filename)
	if !format.IsValid() {
		return domain.Document{}, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("file type %q not allowed; upload a .pdf or .docx", filepath.Ext(header.Filename)))
	}

	content, err := readUpload(header)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{Name: filepath.Base(header.Filename), Format: format, Content: content}, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func sendDocument(c *fiber.Ctx, doc *domain.RenderedDocument) error {
	if doc.Filename != "" {
		c.Attachment(doc.Filename)
	}
	c.Set(fiber.HeaderContentType, doc.MIMEType)
	return c.Send(doc.Content)
}
