package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"
)

// Renderer renders HTML and plain-text email bodies from template files.
// Compiled templates are cached per resolved path and never invalidated.
// Safe for concurrent use.
type Renderer struct {
	fsys      fs.FS
	md        goldmark.Markdown
	htmlCache map[string]*compiledHTML
	textCache map[string]*compiledText
	osPaths   bool

	mu sync.RWMutex
}

// compiledHTML is a parsed HTML (or markdown) template plus its frontmatter.
type compiledHTML struct {
	metadata map[string]any
	html     *htmltemplate.Template // nil for markdown templates
	text     *texttemplate.Template // set for markdown templates
}

// compiledText is a parsed plain-text template plus its frontmatter.
type compiledText struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// New creates a renderer reading templates from the given filesystem.
// A nil filesystem reads through the OS, and cache keys become absolute
// paths so the same file is compiled once regardless of how it is referenced.
func New(fsys fs.FS) *Renderer {
	r := &Renderer{
		fsys:      fsys,
		md:        goldmark.New(),
		htmlCache: make(map[string]*compiledHTML),
		textCache: make(map[string]*compiledText),
	}
	if fsys == nil {
		r.fsys = osFS{}
		r.osPaths = true
	}
	return r
}

// Input names the template files and data for one render.
// Empty paths yield empty bodies.
type Input struct {
	Data     any
	HTMLPath string // HTML template; a ".md" extension switches to markdown
	TextPath string // plain-text template
	CSSPath  string // optional stylesheet inlined into the rendered HTML
}

// Result is a pair of rendered bodies plus template frontmatter.
// Metadata comes from the HTML template, falling back to the text template.
type Result struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render produces both bodies. The HTML and text paths are resolved
// concurrently; both finish before the first error (if any) is reported, so
// a failure on one side never leaves dangling work on the other.
func (r *Renderer) Render(in Input) (*Result, error) {
	var (
		htmlBody, textBody string
		htmlMeta, textMeta map[string]any
	)

	var g errgroup.Group
	g.Go(func() error {
		if in.HTMLPath == "" {
			return nil
		}
		var err error
		htmlBody, htmlMeta, err = r.renderHTML(in.HTMLPath, in.CSSPath, in.Data)
		return err
	})
	g.Go(func() error {
		if in.TextPath == "" {
			return nil
		}
		var err error
		textBody, textMeta, err = r.renderText(in.TextPath, in.Data)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metadata := htmlMeta
	if len(metadata) == 0 && textMeta != nil {
		metadata = textMeta
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &Result{HTML: htmlBody, Text: textBody, Metadata: metadata}, nil
}

func (r *Renderer) renderHTML(name, cssPath string, data any) (string, map[string]any, error) {
	key := r.resolve(name)

	compiled, err := r.getHTML(key)
	if err != nil {
		return "", nil, err
	}

	var body bytes.Buffer
	if compiled.html != nil {
		err = compiled.html.Execute(&body, data)
	} else {
		err = compiled.text.Execute(&body, data)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrExecuteFailed, key, err)
	}

	out := body.String()
	if compiled.text != nil {
		// Markdown template: convert the executed body to HTML.
		var converted bytes.Buffer
		if err := r.md.Convert(body.Bytes(), &converted); err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrExecuteFailed, key, err)
		}
		out = converted.String()
	}

	if cssPath != "" {
		cssKey := r.resolve(cssPath)
		css, err := fs.ReadFile(r.fsys, cssKey)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrStyleInline, cssKey, err)
		}
		out, err = inlineStyles(out, string(css))
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrStyleInline, cssKey, err)
		}
	}

	return out, compiled.metadata, nil
}

func (r *Renderer) renderText(name string, data any) (string, map[string]any, error) {
	key := r.resolve(name)

	compiled, err := r.getText(key)
	if err != nil {
		return "", nil, err
	}

	var body bytes.Buffer
	if err := compiled.tmpl.Execute(&body, data); err != nil {
		return "", nil, fmt.Errorf("%w: %s: %v", ErrExecuteFailed, key, err)
	}
	return body.String(), compiled.metadata, nil
}

// getHTML returns the cached compiled template or compiles and caches it.
func (r *Renderer) getHTML(key string) (*compiledHTML, error) {
	r.mu.RLock()
	if c, ok := r.htmlCache[key]; ok {
		r.mu.RUnlock()
		return c, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.htmlCache[key]; ok {
		return c, nil
	}

	content, err := fs.ReadFile(r.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, key, err)
	}

	metadata, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	c := &compiledHTML{metadata: metadata}
	if strings.EqualFold(filepath.Ext(key), ".md") {
		tmpl, err := texttemplate.New(key).Parse(string(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, key, err)
		}
		c.text = tmpl
	} else {
		tmpl, err := htmltemplate.New(key).Parse(string(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, key, err)
		}
		c.html = tmpl
	}

	r.htmlCache[key] = c
	return c, nil
}

// getText returns the cached compiled template or compiles and caches it.
func (r *Renderer) getText(key string) (*compiledText, error) {
	r.mu.RLock()
	if c, ok := r.textCache[key]; ok {
		r.mu.RUnlock()
		return c, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.textCache[key]; ok {
		return c, nil
	}

	content, err := fs.ReadFile(r.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, key, err)
	}

	metadata, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	tmpl, err := texttemplate.New(key).Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, key, err)
	}

	c := &compiledText{metadata: metadata, tmpl: tmpl}
	r.textCache[key] = c
	return c, nil
}

// resolve normalizes a template reference into a cache key. OS-backed
// renderers use absolute paths so "./t.html" and "t.html" share one entry.
func (r *Renderer) resolve(name string) string {
	if r.osPaths {
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
	}
	return path.Clean(name)
}
