package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelim = []byte("---")

// splitFrontmatter separates an optional leading YAML frontmatter block from
// the template body. Files without a leading "---" line pass through with
// empty metadata.
func splitFrontmatter(content []byte) (map[string]any, []byte, error) {
	if !bytes.HasPrefix(content, frontmatterDelim) {
		return map[string]any{}, content, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, frontmatterDelim), "\r\n")
	if len(rest) == 0 {
		return nil, nil, fmt.Errorf("%w: missing closing delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, frontmatterDelim)
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: missing closing delimiter", ErrInvalidFrontmatter)
	}

	block := rest[:end]
	body := rest[end+len(frontmatterDelim):]
	body = bytes.TrimPrefix(body, []byte("\r\n"))
	if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	}

	metadata := map[string]any{}
	if len(bytes.TrimSpace(block)) > 0 {
		if err := yaml.Unmarshal(block, &metadata); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	return metadata, body, nil
}
