// Package knowledge loads the channel's guidance documents (tone, audience,
// technical framework, packaging, aesthetics, retro archive) for prompt
// injection. Content is opaque text as far as the pipeline is concerned.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gfpd/contentengine/internal/workflow"
)

// Document names, resolved to files under the knowledge directory.
const (
	DocTone      = "tone_and_vocabulary"
	DocAudience  = "audience_persona"
	DocTechnical = "technical_realism"
	DocPackaging = "packaging_signal"
	DocAesthetic = "aesthetic_brand"
	DocRetro     = "retro_archive"
)

// Library loads guidance documents with a lazy per-process cache. The cache
// is never invalidated: the underlying files are treated as immutable for the
// process lifetime.
type Library struct {
	dir string

	mu    sync.Mutex
	cache map[string]string
}

// NewLibrary creates a Library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir, cache: make(map[string]string)}
}

// Load returns a document's content for a mode. It tries <name>.<mode>.txt
// first and falls back to <name>.txt.
func (l *Library) Load(name string, mode workflow.Mode) (string, error) {
	key := name + "." + string(mode)

	l.mu.Lock()
	defer l.mu.Unlock()
	if content, ok := l.cache[key]; ok {
		return content, nil
	}

	candidates := []string{
		filepath.Join(l.dir, fmt.Sprintf("%s.%s.txt", name, mode)),
		filepath.Join(l.dir, name+".txt"),
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			content := string(data)
			l.cache[key] = content
			return content, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading knowledge file %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("knowledge document %q not found in %s", name, l.dir)
}

func (l *Library) combine(mode workflow.Mode, sections ...[2]string) (string, error) {
	var parts []string
	for _, s := range sections {
		content, err := l.Load(s[1], mode)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("=== %s ===\n%s", s[0], content))
	}
	return strings.Join(parts, "\n\n"), nil
}

// ScriptingContext combines the documents injected into hook, outline and
// script prompts.
func (l *Library) ScriptingContext(mode workflow.Mode) (string, error) {
	return l.combine(mode,
		[2]string{"TONE AND VOCABULARY GUIDE", DocTone},
		[2]string{"TARGET AUDIENCE", DocAudience},
		[2]string{"TECHNICAL REALISM FRAMEWORK", DocTechnical},
	)
}

// PackagingContext combines the documents injected into packaging prompts.
func (l *Library) PackagingContext(mode workflow.Mode) (string, error) {
	return l.combine(mode,
		[2]string{"PACKAGING AND SIGNAL GUIDE", DocPackaging},
		[2]string{"AESTHETIC BRAND GUIDELINES", DocAesthetic},
	)
}

// ResearchContext combines the documents injected into radar prompts.
func (l *Library) ResearchContext(mode workflow.Mode) (string, error) {
	return l.combine(mode,
		[2]string{"TECHNICAL REALISM FRAMEWORK", DocTechnical},
		[2]string{"RETRO ARCHIVE INDEX", DocRetro},
	)
}
