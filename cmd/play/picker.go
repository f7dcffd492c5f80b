package play

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/karaoke/cmd/timing"
	"github.com/samber/lo"
)

var (
	ErrNoTimingFiles   = errors.New("no timing files found")
	ErrPickerCancelled = errors.New("cancelled")
	errManualEntry     = errors.New("manual path entry requested")
)

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	pickerHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// FindTimingFiles lists playable files directly inside dir, sorted by name.
func FindTimingFiles(dir string, loaders []timing.Loader) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return filepath.Join(dir, e.Name()), !e.IsDir() && timing.IsTimingFile(e.Name(), loaders)
	})
	sort.Strings(files)
	return files, nil
}

type pickerModel struct {
	files  []string
	cursor int
	chosen string
	manual bool
	quit   bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.files)-1)
	case "enter":
		if len(m.files) > 0 {
			m.chosen = m.files[m.cursor]
		}
		return m, tea.Quit
	case "p":
		m.manual = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	var sb strings.Builder
	sb.WriteString(pickerTitleStyle.Render("Pick a karaoke file"))
	sb.WriteString("\n\n")
	for i, f := range m.files {
		line := "  " + filepath.Base(f)
		if i == m.cursor {
			line = pickerSelectedStyle.Render("▸ " + filepath.Base(f))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(pickerHelpStyle.Render("↑/↓ move • enter play • p type a path • q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (m pickerModel) result() (string, error) {
	switch {
	case m.quit:
		return "", ErrPickerCancelled
	case m.manual:
		return "", errManualEntry
	case m.chosen == "":
		return "", ErrPickerCancelled
	default:
		return m.chosen, nil
	}
}

// PickFile lets the user choose a timing file from dir in an interactive menu.
func PickFile(dir string, loaders []timing.Loader) (string, error) {
	files, err := FindTimingFiles(dir, loaders)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoTimingFiles, dir)
	}

	final, err := tea.NewProgram(pickerModel{files: files}).Run()
	if err != nil {
		return "", err
	}
	return final.(pickerModel).result()
}
