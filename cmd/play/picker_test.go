package play

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/karaoke/cmd/timing"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m pickerModel, keys ...string) pickerModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(pickerModel)
	}
	return m
}

func TestPicker_Navigation(t *testing.T) {
	m := pickerModel{files: []string{"a.json", "b.json", "c.json"}}

	m = press(m, "down", "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped at the last file)", m.cursor)
	}
	m = press(m, "up", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	m = press(m, "j", "enter")

	path, err := m.result()
	if err != nil || path != "b.json" {
		t.Errorf("result() = %q, %v, want b.json", path, err)
	}
}

func TestPicker_QuitAndManual(t *testing.T) {
	m := press(pickerModel{files: []string{"a.json"}}, "q")
	if _, err := m.result(); !errors.Is(err, ErrPickerCancelled) {
		t.Errorf("q: result() error = %v, want ErrPickerCancelled", err)
	}

	m = press(pickerModel{files: []string{"a.json"}}, "esc")
	if _, err := m.result(); !errors.Is(err, ErrPickerCancelled) {
		t.Errorf("esc: result() error = %v, want ErrPickerCancelled", err)
	}

	m = press(pickerModel{files: []string{"a.json"}}, "p")
	if _, err := m.result(); !errors.Is(err, errManualEntry) {
		t.Errorf("p: result() error = %v, want errManualEntry", err)
	}
}

func TestPicker_View(t *testing.T) {
	m := pickerModel{files: []string{"/songs/a.json", "/songs/b.json"}, cursor: 1}
	view := m.View()
	if !strings.Contains(view, "a.json") || !strings.Contains(view, "▸ b.json") {
		t.Errorf("View() = %q", view)
	}
}

func TestFindTimingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.JSON", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.json"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := FindTimingFiles(dir, timing.DefaultLoaders)
	if err != nil {
		t.Fatalf("FindTimingFiles() returned error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.JSON"), filepath.Join(dir, "b.json")}
	if len(files) != len(want) {
		t.Fatalf("FindTimingFiles() = %q, want %q", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestPickFile_NoFiles(t *testing.T) {
	if _, err := PickFile(t.TempDir(), timing.DefaultLoaders); !errors.Is(err, ErrNoTimingFiles) {
		t.Errorf("PickFile() error = %v, want ErrNoTimingFiles", err)
	}
}
