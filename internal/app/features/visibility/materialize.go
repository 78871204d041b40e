// internal/app/features/visibility/materialize.go
package visibility

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	vispanel "github.com/dalemusser/courseforge/internal/app/system/visibility"
)

// Materialize turns a panel description into markup. It is a dumb
// walk of the description: all decisions (which sections exist, which
// controls are checked, which labels appear) were made by the
// renderer. Labels arrive pre-escaped; everything else placed into
// attributes is escaped here.
func Materialize(p vispanel.Panel) template.HTML {
	var b strings.Builder

	b.WriteString(`<div class="visibility-panel">`)

	if p.Empty != nil {
		writeEmptyState(&b, p.Empty)
	}
	if p.Warning != nil {
		writeWarning(&b, p.Warning)
	}
	if p.Form != nil {
		writeForm(&b, p.Form)
	}

	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

func writeEmptyState(b *strings.Builder, e *vispanel.EmptyState) {
	b.WriteString(`<div class="visibility-empty">`)
	fmt.Fprintf(b, `<h3>%s</h3>`, e.Heading)
	fmt.Fprintf(b, `<p>%s</p>`, e.Body)
	fmt.Fprintf(b, `<a class="button action-primary" href="%s">%s</a>`,
		html.EscapeString(e.ActionURL), e.ActionLabel)
	b.WriteString(`</div>`)
}

func writeWarning(b *strings.Builder, w *vispanel.Warning) {
	b.WriteString(`<div class="visibility-warning" role="alert">`)
	fmt.Fprintf(b, `<span class="sr-only">%s</span> %s`, w.ScreenReaderLead, w.Text)
	b.WriteString(`</div>`)
}

func writeForm(b *strings.Builder, f *vispanel.Form) {
	b.WriteString(`<form method="post" class="visibility-form">`)

	fmt.Fprintf(b, `<fieldset class="visibility-level"><legend>%s</legend>`, f.Prompt)
	writeRadio(b, f.LevelAll)
	writeRadio(b, f.LevelSpecific)
	b.WriteString(`</fieldset>`)

	if f.SelectedVerifiedPartitionID != "" {
		fmt.Fprintf(b, `<input type="hidden" name="verified-partition" value="%s">`,
			html.EscapeString(f.SelectedVerifiedPartitionID))
	}

	b.WriteString(`<ul class="visibility-groups">`)
	for _, cb := range f.Groups {
		writeCheckbox(b, cb)
	}
	b.WriteString(`</ul>`)

	b.WriteString(`<button type="submit" class="action-primary">Save</button>`)
	b.WriteString(`</form>`)
}

func writeRadio(b *strings.Builder, r vispanel.Radio) {
	checked := ""
	if r.Checked {
		checked = " checked"
	}
	fmt.Fprintf(b, `<label for="%s"><input type="radio" id="%s" name="%s" value="%s"%s> %s</label>`,
		html.EscapeString(r.ID), html.EscapeString(r.ID), html.EscapeString(r.Name),
		html.EscapeString(r.Value), checked, r.Label)
}

func writeCheckbox(b *strings.Builder, cb vispanel.Checkbox) {
	checked := ""
	if cb.Checked {
		checked = " checked"
	}
	class := "visibility-group"
	if cb.WasRemoved {
		class += " was-removed"
	}

	fmt.Fprintf(b, `<li class="%s">`, class)
	fmt.Fprintf(b, `<label for="%s"><input type="checkbox" id="%s" name="%s" value="%s"%s`,
		html.EscapeString(cb.ID), html.EscapeString(cb.ID), html.EscapeString(cb.Name),
		html.EscapeString(cb.Value), checked)
	if cb.WasRemoved {
		b.WriteString(` data-was-removed="true"`)
	}
	fmt.Fprintf(b, `> %s</label>`, cb.Label)
	if cb.Note != "" {
		fmt.Fprintf(b, `<p class="deleted-note">%s</p>`, cb.Note)
	}
	b.WriteString(`</li>`)
}
