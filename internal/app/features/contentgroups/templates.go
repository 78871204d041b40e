// internal/app/features/contentgroups/templates.go
package contentgroups

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "contentgroups",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
