// Package visibility builds the render description for the component
// visibility panel: the editor that restricts who can see a course
// component via content groups.
//
// Render is a pure function from a ViewModel to a Panel. It performs no
// I/O and holds no state; the ViewModel is assembled upstream (partinfo)
// and the Panel is materialized downstream (the visibility feature's
// template). Localization and escaping are injected so tests can
// substitute identity functions.
package visibility

import "fmt"

// Field and element identifiers emitted into the form. Client-side
// behavior and the submission handler bind to these, so they are fixed.
const (
	FieldLevel = "visibility-level"
	FieldGroup = "visibility-content-group"

	LevelAllID      = "visibility-level-all"
	LevelSpecificID = "visibility-level-specific"

	LevelAllValue      = "all"
	LevelSpecificValue = "specific"
)

// Group is one selectable audience segment as seen by the panel.
// Deleted marks a stale reference: the group is still selected on the
// component but its definition no longer exists in the partition.
type Group struct {
	ID       string
	Name     string
	Selected bool
	Deleted  bool
}

// Partition is a named axis of segmentation with its groups in
// authoring order.
type Partition struct {
	ID     string
	Name   string
	Groups []Group
}

// ViewModel is the read-only input to Render, assembled by the upstream
// partition-info collaborator.
//
// HasSelectedGroups is precomputed upstream: true iff some group across
// CohortPartitions is selected. Render does not recompute it; radio
// pre-selection follows it as given.
type ViewModel struct {
	// UserPartitions is every partition relevant to the component,
	// regardless of scheme. The panel is "configured" iff this is
	// non-empty.
	UserPartitions []Partition
	// CohortPartitions are the content-group partitions rendered as
	// checkboxes, in order.
	CohortPartitions []Partition

	HasSelectedGroups bool
	// SelectedVerifiedPartitionID names the enrollment-track partition
	// carrying a selection, if any. It is passed through to the form
	// for client-side binding; the decision logic does not consult it.
	SelectedVerifiedPartitionID string

	// ManageGroupsURL is the link target of the empty state, used
	// verbatim.
	ManageGroupsURL string

	// StaffLocked is true when an ancestor unit hides this component
	// from students, overriding the panel's settings.
	StaffLocked bool
}

// Translator localizes a user-facing string. Panel strings contain no
// user data, so translated text is inserted without further escaping.
type Translator interface {
	T(msg string) string
}

// EscapeFunc escapes untrusted text (group names) before it is placed
// in markup.
type EscapeFunc func(string) string

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(msg string) string

// T implements Translator.
func (f TranslatorFunc) T(msg string) string { return f(msg) }

// Identity returns its input unchanged. Useful as a test Translator
// (via TranslatorFunc) or EscapeFunc.
func Identity(s string) string { return s }

// State is the panel's top-level render state. Exactly one applies per
// render, determined by (len(UserPartitions) > 0, StaffLocked).
type State int

const (
	// StateUnconfigured renders only the empty state; no form.
	StateUnconfigured State = iota
	// StateConfiguredUnlocked renders the form alone.
	StateConfiguredUnlocked
	// StateConfiguredLocked renders the staff-lock warning and the form.
	StateConfiguredLocked
)

// Panel is the declarative description of one render of the visibility
// editor. Exactly one of the following holds:
//
//	StateUnconfigured       Empty != nil, Warning == nil, Form == nil
//	StateConfiguredUnlocked Empty == nil, Warning == nil, Form != nil
//	StateConfiguredLocked   Empty == nil, Warning != nil, Form != nil
type Panel struct {
	State   State
	Empty   *EmptyState
	Warning *Warning
	Form    *Form
}

// EmptyState tells the author no content groups exist yet and links to
// the group-management page.
type EmptyState struct {
	Heading     string
	Body        string
	ActionLabel string
	ActionURL   string
}

// Warning is the ancestor staff-lock banner. ScreenReaderLead is
// announced by assistive technology but not part of the visible running
// text.
type Warning struct {
	ScreenReaderLead string
	Text             string
}

// Radio is one of the two mutually exclusive visibility-level choices.
type Radio struct {
	ID      string
	Name    string
	Value   string
	Label   string
	Checked bool
}

// Checkbox is one content-group choice. WasRemoved marks a stale
// selection; its Label is the fixed placeholder, never the group name.
type Checkbox struct {
	ID         string
	Name       string
	Value      string
	Label      string
	Checked    bool
	WasRemoved bool
	Note       string
}

// Form is the controls form: the radio pair plus the flattened,
// order-preserving content-group checkbox list.
type Form struct {
	Prompt                      string
	LevelAll                    Radio
	LevelSpecific               Radio
	Groups                      []Checkbox
	SelectedVerifiedPartitionID string
}

// Render maps a ViewModel to its Panel.
//
// If no partitions are configured, only the empty state is emitted.
// Otherwise the form is always emitted, with the warning banner added
// when an ancestor staff lock is in effect. Exactly one radio is
// checked, driven solely by HasSelectedGroups. Checkboxes follow
// partition order, then group order, with no filtering or reordering;
// deleted groups keep their checkbox (so the author can clear them) but
// render the placeholder label and an explanatory note.
//
// Render never fails: inconsistent input renders as given.
func Render(vm ViewModel, tr Translator, esc EscapeFunc) Panel {
	if tr == nil {
		tr = TranslatorFunc(Identity)
	}
	if esc == nil {
		esc = Identity
	}

	if len(vm.UserPartitions) == 0 {
		return Panel{
			State: StateUnconfigured,
			Empty: &EmptyState{
				Heading:     tr.T("No content groups exist"),
				Body:        tr.T("Use content groups to give groups of students access to specific content. Create a content group to enable content visibility options for this component."),
				ActionLabel: tr.T("Manage groups"),
				ActionURL:   vm.ManageGroupsURL,
			},
		}
	}

	state := StateConfiguredUnlocked
	var warning *Warning
	if vm.StaffLocked {
		state = StateConfiguredLocked
		warning = &Warning{
			ScreenReaderLead: tr.T("Warning:"),
			Text:             tr.T("The unit that contains this component is hidden from students. The unit setting overrides the component access settings defined here."),
		}
	}

	form := &Form{
		Prompt: tr.T("Choose which students can see this component."),
		LevelAll: Radio{
			ID:      LevelAllID,
			Name:    FieldLevel,
			Value:   LevelAllValue,
			Label:   tr.T("All Students and Staff"),
			Checked: !vm.HasSelectedGroups,
		},
		LevelSpecific: Radio{
			ID:      LevelSpecificID,
			Name:    FieldLevel,
			Value:   LevelSpecificValue,
			Label:   tr.T("Specific Content Groups"),
			Checked: vm.HasSelectedGroups,
		},
		SelectedVerifiedPartitionID: vm.SelectedVerifiedPartitionID,
	}

	for _, p := range vm.CohortPartitions {
		for _, g := range p.Groups {
			cb := Checkbox{
				ID:      fmt.Sprintf("%s-%s-%s", FieldGroup, p.ID, g.ID),
				Name:    FieldGroup,
				Value:   fmt.Sprintf("%s-%s", p.ID, g.ID),
				Checked: g.Selected,
			}
			if g.Deleted {
				cb.WasRemoved = true
				cb.Label = tr.T("Deleted Group")
				cb.Note = tr.T("This group no longer exists. Choose another group or do not restrict access to this component.")
			} else {
				cb.Label = esc(g.Name)
			}
			form.Groups = append(form.Groups, cb)
		}
	}

	return Panel{State: state, Warning: warning, Form: form}
}
