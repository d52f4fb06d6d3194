package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

const promptExt = ".txt"

// PromptStore loads assistant prompts from user-editable files, falling back
// to the embedded defaults. The directory is populated lazily on first Load.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// Every template receives the job description, then the resume text.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSuggest: `REVIEW THE FOLLOWING RESUME AGAINST THIS JOB DESCRIPTION:

JOB DESCRIPTION:
%s

RESUME:
%s

Please provide 3-5 specific, actionable suggestions to improve this resume's ATS match score for the job description above. Format with bullet points.`,

	driven.PromptRewrite: `You are an expert resume writer who specialises in optimising resumes to pass ATS (Applicant Tracking System) scans.

REWRITE THE FOLLOWING RESUME TO BETTER MATCH THIS JOB DESCRIPTION:

JOB DESCRIPTION:
%s

ORIGINAL RESUME:
%s

Rewrite this resume to maximise its ATS match score while keeping the person's work history and qualifications honest:
1. Keep the same section structure as the original resume
2. Preserve all contact information and personal details
3. Highlight skills and experience that match the job description
4. Work keywords from the job description in naturally
5. Quantify achievements where possible
6. Keep a professional tone
7. Keep roughly the same length as the original

Do NOT invent work experience or qualifications that are not in the original resume. Return plain text only, one paragraph per line, with section headings in upper case.`,

	driven.PromptAnalyse: `You are an ATS (Applicant Tracking System) reviewer. Compare the resume with the job description.

JOB DESCRIPTION:
%s

RESUME:
%s

Start your answer with a single line of the form "MATCH SCORE: NN%%" where NN is a whole number from 0 to 100 estimating how well the resume fits the role. Then explain the score in a few short paragraphs covering matched requirements, missing requirements and the strongest selling points.`,
}

// NewPromptStore creates a file-based prompt store.
// If promptDir is empty, defaults to ~/.atsfit/prompts. No I/O happens until Load.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// A missing or unreadable file falls back to the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if fallback, ok := defaultPrompts[name]; ok {
			return fallback, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check so a concurrent load wins consistently.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch evicts cached prompts when their files change and sends the prompt
// name on the returned channel. The channel closes when ctx is done.
func (s *PromptStore) Watch(ctx context.Context) (<-chan string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return nil, s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.promptDir, err)
	}

	changed := make(chan string, 8)
	go func() {
		defer close(changed)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name, ok := s.handleFsEvent(event)
				if !ok {
					continue
				}
				logger.Info("prompt %q changed, reloaded", name)
				select {
				case changed <- name:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("prompt watcher: %v", err)
			}
		}
	}()

	return changed, nil
}

// handleFsEvent evicts the prompt an event refers to.
// Events for non-prompt files and pure chmods are ignored.
func (s *PromptStore) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	base := filepath.Base(event.Name)
	if filepath.Ext(base) != promptExt || strings.HasPrefix(base, ".") {
		return "", false
	}
	name := strings.TrimSuffix(base, promptExt)

	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
	return name, true
}

// initialise creates the prompt directory and writes any missing default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+promptExt)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+promptExt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return nil
	}

	content := `# atsfit prompts

These files drive the optional language-model assistant.

- ` + "`suggest.txt`" + ` - improvement suggestions
- ` + "`rewrite.txt`" + ` - ATS-optimised rewrite of the resume
- ` + "`analyse.txt`" + ` - narrative analysis; the first line must read "MATCH SCORE: NN%"

Each template takes two ` + "`%s`" + ` placeholders: the job description first,
then the resume text. Write a literal percent sign as ` + "`%%`" + `.

Edits are picked up by the next command. A running ` + "`atsfit serve`" + `
reloads them automatically.
`
	return os.WriteFile(path, []byte(content), 0600)
}
