package driven

// Normaliser turns a job posting saved in a markup format into plain text
// suitable for scoring.
type Normaliser interface {
	// Extensions returns the lower-case file extensions this normaliser
	// handles, including the leading dot.
	Extensions() []string

	// Normalise returns the readable text of content, one block per line.
	Normalise(content []byte) string
}
