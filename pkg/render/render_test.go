package render_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/trebuchet/pkg/render"
)

// countingFS wraps a MapFS and counts reads, so tests can observe whether a
// render hit the cache or went back to disk.
type countingFS struct {
	fstest.MapFS
	reads *atomic.Int32
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.reads.Add(1)
	return c.MapFS.ReadFile(name)
}

func TestRenderer_RoundTrip(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"t.html": &fstest.MapFile{Data: []byte(`<h1>{{.greeting}}</h1>`)},
		"t.txt":  &fstest.MapFile{Data: []byte(`{{.greeting}}`)},
	}

	r := render.New(fsys)
	result, err := r.Render(render.Input{
		HTMLPath: "t.html",
		TextPath: "t.txt",
		Data:     map[string]any{"greeting": "Hello World!"},
	})
	require.NoError(t, err)
	require.Equal(t, "<h1>Hello World!</h1>", result.HTML)
	require.Equal(t, "Hello World!", result.Text)
}

func TestRenderer_EmptyPathsYieldEmptyBodies(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{})
	result, err := r.Render(render.Input{Data: map[string]any{"x": 1}})
	require.NoError(t, err)
	require.Empty(t, result.HTML)
	require.Empty(t, result.Text)
}

func TestRenderer_CompilesEachPathOnce(t *testing.T) {
	t.Parallel()

	var reads atomic.Int32
	fsys := &countingFS{
		MapFS: fstest.MapFS{
			"t.html": &fstest.MapFile{Data: []byte(`<p>{{.Name}}</p>`)},
			"t.txt":  &fstest.MapFile{Data: []byte(`{{.Name}}`)},
		},
		reads: &reads,
	}

	r := render.New(fsys)

	_, err := r.Render(render.Input{HTMLPath: "t.html", TextPath: "t.txt", Data: map[string]any{"Name": "Alice"}})
	require.NoError(t, err)
	require.Equal(t, int32(2), reads.Load(), "first render reads both files")

	result, err := r.Render(render.Input{HTMLPath: "t.html", TextPath: "t.txt", Data: map[string]any{"Name": "Bob"}})
	require.NoError(t, err)
	require.Equal(t, int32(2), reads.Load(), "second render must hit the cache")
	require.Equal(t, "<p>Bob</p>", result.HTML)
	require.Equal(t, "Bob", result.Text)
}

func TestRenderer_ConcurrentRenders(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"t.html": &fstest.MapFile{Data: []byte(`<p>{{.N}}</p>`)},
		"t.txt":  &fstest.MapFile{Data: []byte(`{{.N}}`)},
	}
	r := render.New(fsys)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := r.Render(render.Input{HTMLPath: "t.html", TextPath: "t.txt", Data: map[string]any{"N": "x"}})
			require.NoError(t, err)
			require.Equal(t, "<p>x</p>", result.HTML)
		}()
	}
	wg.Wait()
}

func TestRenderer_MissingTemplate(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{
		"t.txt": &fstest.MapFile{Data: []byte(`ok`)},
	})

	_, err := r.Render(render.Input{HTMLPath: "missing.html", TextPath: "t.txt"})
	require.ErrorIs(t, err, render.ErrTemplateNotFound)
	require.Contains(t, err.Error(), "missing.html", "error must name the failing path")
}

func TestRenderer_ParseErrorDistinctFromNotFound(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{
		"bad.html": &fstest.MapFile{Data: []byte(`<p>{{.Name</p>`)},
	})

	_, err := r.Render(render.Input{HTMLPath: "bad.html"})
	require.ErrorIs(t, err, render.ErrTemplateParse)
	require.NotErrorIs(t, err, render.ErrTemplateNotFound)
	require.Contains(t, err.Error(), "bad.html")
}

func TestRenderer_ExecuteError(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{
		"t.txt": &fstest.MapFile{Data: []byte(`{{call .Fn}}`)},
	})

	_, err := r.Render(render.Input{TextPath: "t.txt", Data: map[string]any{}})
	require.ErrorIs(t, err, render.ErrExecuteFailed)
}

func TestRenderer_InlinesCSS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"t.html": &fstest.MapFile{Data: []byte(`<html><head></head><body><h1>{{.Title}}</h1></body></html>`)},
		"t.css":  &fstest.MapFile{Data: []byte(`h1 { color: red; }`)},
	}

	r := render.New(fsys)
	result, err := r.Render(render.Input{
		HTMLPath: "t.html",
		CSSPath:  "t.css",
		Data:     map[string]any{"Title": "Hi"},
	})
	require.NoError(t, err)
	require.Contains(t, result.HTML, "Hi")
	require.Regexp(t, `<h1[^>]+style="[^"]*color:\s*red`, result.HTML)
}

func TestRenderer_MissingCSSFailsRender(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{
		"t.html": &fstest.MapFile{Data: []byte(`<p>hi</p>`)},
	})

	_, err := r.Render(render.Input{HTMLPath: "t.html", CSSPath: "missing.css"})
	require.ErrorIs(t, err, render.ErrStyleInline)
	require.Contains(t, err.Error(), "missing.css")
}

func TestRenderer_MarkdownTemplate(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{
		"t.md": &fstest.MapFile{Data: []byte("# Welcome\n\nHello **{{.Name}}**!\n")},
	})

	result, err := r.Render(render.Input{HTMLPath: "t.md", Data: map[string]any{"Name": "Alice"}})
	require.NoError(t, err)
	require.Contains(t, result.HTML, "<h1")
	require.Contains(t, result.HTML, "<strong>Alice</strong>")
}

func TestRenderer_FrontmatterMetadata(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"t.html": &fstest.MapFile{Data: []byte("---\nSubject: Welcome {{.Name}}\n---\n<p>Hello {{.Name}}</p>")},
		"t.txt":  &fstest.MapFile{Data: []byte("Hello {{.Name}}")},
	}

	r := render.New(fsys)
	result, err := r.Render(render.Input{
		HTMLPath: "t.html",
		TextPath: "t.txt",
		Data:     map[string]any{"Name": "Alice"},
	})
	require.NoError(t, err)
	require.Equal(t, "Welcome {{.Name}}", result.Metadata["Subject"])
	require.Equal(t, "<p>Hello Alice</p>", result.HTML)
}

func TestRenderer_InvalidFrontmatter(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{
		"t.html": &fstest.MapFile{Data: []byte("---\n\t: bad\n---\n<p>hi</p>")},
	})

	_, err := r.Render(render.Input{HTMLPath: "t.html"})
	require.ErrorIs(t, err, render.ErrInvalidFrontmatter)
}

func TestRenderer_TextFrontmatterFallback(t *testing.T) {
	t.Parallel()

	r := render.New(fstest.MapFS{
		"t.txt": &fstest.MapFile{Data: []byte("---\nSubject: Plain\n---\nbody")},
	})

	result, err := r.Render(render.Input{TextPath: "t.txt"})
	require.NoError(t, err)
	require.Equal(t, "Plain", result.Metadata["Subject"])
	require.Equal(t, "body", result.Text)
}
