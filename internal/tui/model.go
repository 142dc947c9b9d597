// Package tui implements the interactive alumni menus on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/alumni/internal/config"
	"github.com/JonMunkholm/alumni/internal/core"
	"github.com/JonMunkholm/alumni/internal/logging"
)

// ActionTimeout bounds every database-backed menu action.
// Can be overridden for testing.
var ActionTimeout = 2 * time.Minute

type screen int

const (
	screenMenu screen = iota
	screenForm
	screenBusy
	screenResult
)

type session struct {
	role  config.Role // empty for alumni sessions
	email string      // set for alumni sessions
}

// Model is the bubbletea model for the whole application.
type Model struct {
	ctx      context.Context
	backend  Backend
	resetter Resetter
	auth     config.AuthConfig
	styles   Styles

	root        *Menu
	adminMenu   *Menu
	studentMenu *Menu
	alumnusMenu *Menu

	menu   *Menu
	cursor int

	screen screen
	form   *Form
	status string
	result string
	err    error

	session  session
	attempts int
}

// New creates the model. ctx is the parent of every action context.
func New(ctx context.Context, backend Backend, resetter Resetter, auth config.AuthConfig) *Model {
	m := &Model{
		ctx:      ctx,
		backend:  backend,
		resetter: resetter,
		auth:     auth,
		styles:   DefaultStyles(),
	}
	m.root = buildMenuTree(m)
	m.menu = m.root
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

/* ----------------------------------------
	UPDATE
---------------------------------------- */

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case WdMsg:
		m.status = string(msg)
		return m, nil
	case DoneMsg:
		m.screen = screenResult
		m.result = string(msg)
		m.err = nil
		return m, nil
	case ErrMsg:
		m.screen = screenResult
		m.result = ""
		m.err = msg.Err
		return m, nil
	case emailChanged:
		m.session.email = msg.email
		m.screen = screenResult
		m.result = msg.text
		m.err = nil
		return m, nil
	case alumnusLoggedIn:
		logging.FromContext(m.ctx).Info("login", "email", msg.email)
		m.session = session{email: msg.email}
		m.screen = screenMenu
		m.enter(m.alumnusMenu)
		return m, nil
	}

	switch m.screen {
	case screenMenu:
		return m, m.updateMenu(msg)
	case screenForm:
		return m, m.updateForm(msg)
	case screenResult:
		if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEnter || key.Type == tea.KeyEsc) {
			m.screen = screenMenu
			m.result = ""
			m.err = nil
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}
	case "esc":
		if m.menu.Parent != nil {
			m.enter(m.menu.Parent)
		}
	case "enter":
		item := m.menu.Items[m.cursor]
		if item.Submenu != nil {
			m.enter(item.Submenu)
			return nil
		}
		if item.Action != nil {
			return item.Action()
		}
	}
	return nil
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.form.update(msg)
	}

	switch key.Type {
	case tea.KeyEsc:
		m.form = nil
		m.screen = screenMenu
		return nil
	case tea.KeyEnter:
		if !m.form.enter() {
			return nil
		}
		form := m.form
		cmd, err := form.Submit(form.values)
		if err != nil {
			form.retry(err.Error())
			return nil
		}
		return cmd
	}
	return m.form.update(msg)
}

func (m *Model) enter(menu *Menu) {
	m.menu = menu
	m.cursor = 0
}

/* ----------------------------------------
	VIEW
---------------------------------------- */

func (m *Model) View() string {
	s := m.styles
	var b strings.Builder

	switch m.screen {
	case screenForm:
		b.WriteString(m.form.view(s))
		b.WriteString(s.Help.Render("enter: next  esc: cancel"))
	case screenBusy:
		b.WriteString(s.Title.Render(m.menu.Title))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(m.status + "..."))
	case screenResult:
		b.WriteString(s.Title.Render(m.menu.Title))
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(s.Error.Render(core.FormatUserError(m.err)))
		} else {
			b.WriteString(m.result)
		}
		b.WriteString("\n")
		b.WriteString(s.Help.Render("enter: continue"))
	default:
		b.WriteString(s.Title.Render(m.menu.Title))
		b.WriteString("\n")
		if m.session.email != "" {
			b.WriteString(s.Muted.Render("Logged in as "+m.session.email) + "\n")
		}
		for i, item := range m.menu.Items {
			if i == m.cursor {
				b.WriteString(s.Selected.Render("> "+item.Label) + "\n")
				continue
			}
			b.WriteString(s.Item.Render(item.Label) + "\n")
		}
		b.WriteString(s.Help.Render("up/down: move  enter: select  esc: back  ctrl+c: quit"))
	}

	b.WriteString("\n")
	return b.String()
}

/* ----------------------------------------
	ACTION HELPERS
---------------------------------------- */

// openForm shows f in place of the current menu.
func (m *Model) openForm(f *Form) tea.Cmd {
	m.form = f
	m.screen = screenForm
	return nil
}

// run executes fn in the background under a fresh operation context and
// reports its outcome as DoneMsg or ErrMsg.
func (m *Model) run(label string, fn func(ctx context.Context) (string, error)) tea.Cmd {
	m.screen = screenBusy
	m.status = label
	m.form = nil
	parent := m.ctx

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(logging.WithOperation(parent), ActionTimeout)
		defer cancel()

		out, err := fn(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%s timed out after %v: %w", label, ActionTimeout, err)
			}
			ue := core.NewUserError(err)
			logging.FromContext(ctx).Error("action failed",
				"action", label, "error", ue.Technical, "code", ue.User.Code)
			return ErrMsg{Err: ue}
		}
		logging.FromContext(ctx).Info("action completed", "action", label)
		return DoneMsg(out)
	}
}

// showError puts err on the result screen without running anything.
func (m *Model) showError(err error) tea.Cmd {
	m.screen = screenResult
	m.form = nil
	m.err = err
	return nil
}

/* ----------------------------------------
	SESSIONS
---------------------------------------- */

func (m *Model) adminLogin() tea.Cmd {
	return m.passwordLogin(config.RoleAdmin, m.auth.AdminPassword, m.adminMenu)
}

func (m *Model) studentLogin() tea.Cmd {
	return m.passwordLogin(config.RoleStudent, m.auth.StudentPassword, m.studentMenu)
}

func (m *Model) passwordLogin(role config.Role, stored string, menu *Menu) tea.Cmd {
	if stored == "" {
		return m.showError(core.ValidationError{Field: string(role), Message: "login is not configured"})
	}
	m.attempts = 0

	title := strings.ToUpper(string(role[:1])) + string(role[1:]) + " Login"
	return m.openForm(newForm(title, []Field{
		{Key: "password", Label: "Password", Secret: true},
	}, func(v Values) (tea.Cmd, error) {
		if m.auth.CheckPassword(role, v["password"]) {
			logging.FromContext(m.ctx).Info("login", "role", role)
			m.session = session{role: role}
			m.form = nil
			m.screen = screenMenu
			m.enter(menu)
			return nil, nil
		}

		m.attempts++
		logging.FromContext(m.ctx).Warn("login failed", "role", role, "attempt", m.attempts)
		if m.attempts >= m.auth.MaxAttempts {
			m.enter(m.root)
			return m.showError(fmt.Errorf("%d failed attempts: %w", m.attempts, core.ErrAuthFailed)), nil
		}
		return nil, fmt.Errorf("incorrect password, %d attempt(s) left", m.auth.MaxAttempts-m.attempts)
	}))
}

func (m *Model) alumnusLogin() tea.Cmd {
	return m.openForm(newForm("Alumni Login", []Field{
		{Key: "email", Label: "Email", Check: core.CheckEmail},
	}, func(v Values) (tea.Cmd, error) {
		email := v["email"]
		m.screen = screenBusy
		m.status = "Checking " + email
		parent := m.ctx
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(logging.WithOperation(parent), ActionTimeout)
			defer cancel()
			ok, err := m.backend.AlumnusExists(ctx, email)
			if err != nil {
				return ErrMsg{Err: err}
			}
			if !ok {
				return ErrMsg{Err: fmt.Errorf("no alumnus with email %s: %w", email, core.ErrNotFound)}
			}
			return alumnusLoggedIn{email: email}
		}, nil
	}))
}

// alumnusLoggedIn is delivered when an alumni login succeeds.
type alumnusLoggedIn struct{ email string }

func (m *Model) logout() tea.Cmd {
	logging.FromContext(m.ctx).Info("logout", "role", m.session.role, "email", m.session.email)
	m.session = session{}
	m.enter(m.root)
	return nil
}
