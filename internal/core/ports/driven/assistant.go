package driven

import "context"

// Suggester proposes improvements to a resume for a job description.
type Suggester interface {
	Suggest(ctx context.Context, resumeText, jobDescription string) (string, error)
}

// Rewriter rewrites a resume to better match a job description.
type Rewriter interface {
	Rewrite(ctx context.Context, resumeText, jobDescription string) (string, error)
}

// Analyst writes a narrative match analysis. The first line containing
// "MATCH SCORE" is expected to read "MATCH SCORE: NN%".
type Analyst interface {
	Analyse(ctx context.Context, resumeText, jobDescription string) (string, error)
}
