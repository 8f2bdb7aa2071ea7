// Command cypherguard-tui is an interactive validator: a query textarea, a
// schema-file path input, and a live-updating list of the errors validate()
// collects — re-run on every keystroke against the currently loaded schema.
// Modeled on runner/tui.go's tea.Program setup and cmd/crud-tui's
// model/update/view split.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	cypherguard "github.com/neo4j-field/cypher-guard"
	"github.com/neo4j-field/cypher-guard/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	focusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	blurredBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0)
)

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	var schemaPath string
	if len(os.Args) > 1 {
		schemaPath = os.Args[1]
	}

	m := newModel(logger, schemaPath)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger sets up the same stderr development logger cmd/scaf-lsp uses;
// the interactive screen owns stdout, so logs never share the alt screen.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

type focusField int

const (
	focusSchemaPath focusField = iota
	focusQuery
)

type model struct {
	logger *zap.Logger

	schemaPath  textInputModel
	query       textAreaModel
	focus       focusField
	sch         *schema.Schema
	schemaErr   error
	parseErr    error
	validation  []cypherguard.ValidationError
	width       int
	height      int
}

func newModel(logger *zap.Logger, schemaPath string) model {
	m := model{
		logger:     logger,
		schemaPath: newTextInputModel("path to schema YAML/JSON", schemaPath),
		query:      newTextAreaModel("MATCH (n) RETURN n"),
		focus:      focusQuery,
	}
	if schemaPath != "" {
		m.reloadSchema()
	}
	m.revalidate()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.focus == focusQuery {
				m.focus = focusSchemaPath
			} else {
				m.focus = focusQuery
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusSchemaPath {
		prev := m.schemaPath.Value()
		m.schemaPath, cmd = m.schemaPath.update(msg)
		if m.schemaPath.Value() != prev {
			m.reloadSchema()
			m.revalidate()
		}
		return m, cmd
	}

	prev := m.query.Value()
	m.query, cmd = m.query.update(msg)
	if m.query.Value() != prev {
		m.revalidate()
	}
	return m, cmd
}

// reloadSchema parses the schema-path field's current value and stores the
// result (or the error) on the model. It never logs at error level for a
// user still typing a path: file-not-found is expected mid-keystroke.
func (m *model) reloadSchema() {
	path := m.schemaPath.Value()
	if path == "" {
		m.sch = nil
		m.schemaErr = nil
		return
	}
	sch, err := loadSchemaFile(path)
	m.sch = sch
	m.schemaErr = err
	if err != nil {
		m.logger.Debug("schema reload failed", zap.String("path", path), zap.Error(err))
	}
}

// revalidate re-runs cypherguard.Validate against the current query text and
// loaded schema, recording either a parse error or the validation list.
func (m *model) revalidate() {
	m.validation = nil
	m.parseErr = nil

	if m.sch == nil {
		return
	}
	errs, err := cypherguard.Validate(m.query.Value(), m.sch)
	if err != nil {
		m.parseErr = err
		return
	}
	m.validation = errs
}

func (m model) View() string {
	var b, top string

	top = titleStyle.Render("cypherguard") + "  " + helpStyle.Render("tab: switch field · esc: quit")

	schemaBorder := blurredBorder
	queryBorder := blurredBorder
	if m.focus == focusSchemaPath {
		schemaBorder = focusedBorder
	} else {
		queryBorder = focusedBorder
	}

	b += top + "\n\n"
	b += schemaBorder.Render("schema: "+m.schemaPath.View()) + "\n"
	if m.schemaErr != nil {
		b += errorStyle.Render(m.schemaErr.Error()) + "\n"
	}
	b += "\n"
	b += queryBorder.Render(m.query.View()) + "\n\n"
	b += m.renderResults()

	return b
}

func (m model) renderResults() string {
	if m.sch == nil {
		return helpStyle.Render("enter a schema path above to begin validating")
	}
	if m.parseErr != nil {
		return errorStyle.Render(m.parseErr.Error())
	}
	if len(m.validation) == 0 {
		return successStyle.Render("no issues found")
	}

	out := ""
	for _, e := range m.validation {
		out += errorStyle.Render(e.Error()) + "\n"
	}
	return out
}
