// internal/app/features/visibility/templates.go
package visibility

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "visibility",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
