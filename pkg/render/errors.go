package render

import "errors"

var (
	// ErrTemplateNotFound indicates a template file could not be read.
	ErrTemplateNotFound = errors.New("render: template not found")

	// ErrTemplateParse indicates a template file contains invalid syntax.
	ErrTemplateParse = errors.New("render: template parse failed")

	// ErrExecuteFailed indicates template execution against the data failed.
	ErrExecuteFailed = errors.New("render: template execution failed")

	// ErrStyleInline indicates the stylesheet could not be read or inlined.
	ErrStyleInline = errors.New("render: css inlining failed")

	// ErrInvalidFrontmatter indicates a malformed YAML frontmatter block.
	ErrInvalidFrontmatter = errors.New("render: invalid frontmatter")
)
