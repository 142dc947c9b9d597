package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	FORM FIELDS
---------------------------------------- */

// Field is one prompt of a form.
type Field struct {
	Key      string
	Label    string
	Optional bool
	Secret   bool
	Check    func(string) error // runs on non-empty input
}

// Values holds the submitted answers keyed by Field.Key.
type Values map[string]string

/* ----------------------------------------
	FORM
---------------------------------------- */

// Form collects its fields one at a time. A field that fails its check is
// asked again with the error shown under the input.
type Form struct {
	Title  string
	Fields []Field

	// Submit runs once every field has a value. A non-nil error re-prompts
	// the last field with the error message.
	Submit func(Values) (tea.Cmd, error)

	input  textinput.Model
	index  int
	values Values
	err    string
}

func newForm(title string, fields []Field, submit func(Values) (tea.Cmd, error)) *Form {
	f := &Form{Title: title, Fields: fields, Submit: submit}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.values = Values{}
	f.index = 0
	f.err = ""
	f.prompt()
}

func (f *Form) prompt() {
	in := textinput.New()
	in.CharLimit = 512
	in.Width = 50
	if f.index < len(f.Fields) {
		field := f.Fields[f.index]
		if field.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		if field.Optional {
			in.Placeholder = "optional"
		}
	}
	in.Focus()
	f.input = in
}

func (f *Form) current() Field {
	return f.Fields[f.index]
}

// done reports whether every field has been answered.
func (f *Form) done() bool {
	return f.index >= len(f.Fields)
}

// enter accepts the current input. It returns true when the form is complete.
func (f *Form) enter() bool {
	field := f.current()
	v := strings.TrimSpace(f.input.Value())

	if v == "" && !field.Optional {
		f.fail(field.Label + " is required")
		return false
	}
	if v != "" && field.Check != nil {
		if err := field.Check(v); err != nil {
			f.fail(err.Error())
			return false
		}
	}

	f.values[field.Key] = v
	f.err = ""
	f.index++
	if f.done() {
		return true
	}
	f.prompt()
	return false
}

func (f *Form) fail(msg string) {
	f.err = msg
	f.input.SetValue("")
}

// retry re-asks the last field after Submit rejected the values.
func (f *Form) retry(msg string) {
	f.index = len(f.Fields) - 1
	delete(f.values, f.current().Key)
	f.prompt()
	f.err = msg
}

func (f *Form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *Form) view(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(f.Title))
	b.WriteString("\n")

	for i := 0; i < f.index && i < len(f.Fields); i++ {
		field := f.Fields[i]
		v := f.values[field.Key]
		if field.Secret {
			v = strings.Repeat("*", len(v))
		}
		b.WriteString(s.Muted.Render(field.Label+": "+v) + "\n")
	}

	if !f.done() {
		b.WriteString(s.Label.Render(f.current().Label+": ") + f.input.View() + "\n")
	}
	if f.err != "" {
		b.WriteString(s.Error.Render(f.err) + "\n")
	}
	return b.String()
}
