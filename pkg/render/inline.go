package render

import (
	"strings"

	"github.com/vanng822/go-premailer/premailer"
)

// inlineStyles applies the stylesheet's rules to the document as inline
// style attributes. The stylesheet is injected as a <style> block (into
// <head> when present) and then flattened by premailer.
func inlineStyles(doc, css string) (string, error) {
	block := "<style type=\"text/css\">\n" + css + "\n</style>"

	if i := strings.Index(strings.ToLower(doc), "</head>"); i >= 0 {
		doc = doc[:i] + block + doc[i:]
	} else {
		doc = block + "\n" + doc
	}

	p, err := premailer.NewPremailerFromString(doc, premailer.NewOptions())
	if err != nil {
		return "", err
	}
	return p.Transform()
}
