package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCanceled is returned when the user leaves a prompt with esc or ctrl+c.
var ErrPromptCanceled = errors.New("prompt canceled")

// promptModel asks for one masked value before the main program starts.
type promptModel struct {
	title    string
	input    textinput.Model
	styles   Styles
	value    string
	canceled bool
}

func newPromptModel(title string) promptModel {
	in := textinput.New()
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	in.Width = 40
	in.Focus()
	return promptModel{title: title, input: in, styles: DefaultStyles()}
}

func (p promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (p promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			p.value = strings.TrimSpace(p.input.Value())
			return p, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			p.canceled = true
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p promptModel) View() string {
	return p.styles.Title.Render(p.title) + "\n" + p.input.View() + "\n" +
		p.styles.Help.Render("enter: submit  esc: cancel") + "\n"
}

// PromptSecret runs a one-field masked prompt and returns what was typed.
func PromptSecret(title string, opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(newPromptModel(title), opts...).Run()
	if err != nil {
		return "", err
	}
	p := final.(promptModel)
	if p.canceled {
		return "", ErrPromptCanceled
	}
	return p.value, nil
}
