package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded invite page templates so callers can reuse
// the built-in rendering out of the box or overlay their own bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
