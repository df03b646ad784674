// Package render compiles and renders email body templates.
//
// A Renderer produces an HTML body and a plain-text body from a pair of
// template files. Compiled templates are cached per resolved path for the
// lifetime of the renderer; files are never re-read or invalidated.
//
// # Usage
//
//	r := render.New(nil) // nil filesystem reads through the OS
//
//	result, err := r.Render(render.Input{
//		HTMLPath: "templates/welcome/index.html",
//		TextPath: "templates/welcome/index.txt",
//		CSSPath:  "templates/welcome/index.css",
//		Data:     map[string]any{"Name": "Alice"},
//	})
//
// The HTML and text templates are read and rendered concurrently. When a CSS
// path is given, the stylesheet is read after the HTML render and its rules
// are inlined into element style attributes, which is what most email clients
// require.
//
// # Frontmatter
//
// Template files may open with a YAML frontmatter block delimited by "---"
// lines. The parsed mapping is returned as Result.Metadata; a "Subject" key
// is the conventional way for a template to carry its default subject line.
//
// # Markdown
//
// An HTML path ending in ".md" is treated as a markdown template: the file is
// executed as a text/template and the output converted to HTML.
package render
