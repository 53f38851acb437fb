package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// testExplorer builds an explorer over the sample document with a
// realistic terminal size applied.
func testExplorer(t *testing.T) explorerModel {
	t.Helper()
	model := newExplorer(sampleDocument(t), "zone.wld")
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(explorerModel)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeString(t *testing.T, model explorerModel, text string) explorerModel {
	t.Helper()
	for _, r := range text {
		updated, _ := model.Update(keyPress(r))
		model = updated.(explorerModel)
	}
	return model
}

func TestExplorer_Navigation(t *testing.T) {
	model := testExplorer(t)
	if model.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", model.cursor)
	}

	model = typeString(t, model, "jjj")
	if model.cursor != 3 {
		t.Errorf("cursor after jjj = %d, want 3", model.cursor)
	}

	model = typeString(t, model, "k")
	if model.cursor != 2 {
		t.Errorf("cursor after k = %d, want 2", model.cursor)
	}

	model = typeString(t, model, "G")
	if model.cursor != len(model.rows)-1 {
		t.Errorf("cursor after G = %d, want %d", model.cursor, len(model.rows)-1)
	}

	model = typeString(t, model, "g")
	if model.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", model.cursor)
	}

	// Moving past the ends stays clamped.
	model = typeString(t, model, "k")
	if model.cursor != 0 {
		t.Errorf("cursor after k at top = %d, want 0", model.cursor)
	}
}

func TestExplorer_FilterNarrowsList(t *testing.T) {
	model := testExplorer(t)
	if len(model.rows) != 6 {
		t.Fatalf("unfiltered rows = %d, want 6", len(model.rows))
	}

	model = typeString(t, model, "/")
	if model.focus != focusFilter {
		t.Fatalf("focus after / = %v, want filter", model.focus)
	}

	model = typeString(t, model, "mesh")
	if len(model.rows) != 1 || model.rows[0] != 5 {
		t.Fatalf("rows filtered by mesh = %v, want [5]", model.rows)
	}

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(explorerModel)
	if model.focus != focusList {
		t.Errorf("focus after enter = %v, want list", model.focus)
	}
	if model.filterText != "mesh" {
		t.Errorf("filter text after enter = %q, want mesh", model.filterText)
	}

	// Esc from the list clears the confirmed filter.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(explorerModel)
	if model.filterText != "" {
		t.Errorf("filter text after esc = %q, want empty", model.filterText)
	}
	if len(model.rows) != 6 {
		t.Errorf("rows after clear = %d, want 6", len(model.rows))
	}
}

func TestExplorer_FilterMatchesNamesAndIndexes(t *testing.T) {
	model := testExplorer(t)

	model = typeString(t, model, "/")
	model = typeString(t, model, "grass")
	if len(model.rows) != 2 {
		t.Fatalf("rows filtered by grass = %v, want texture and material", model.rows)
	}

	// Backspace widens the filter again.
	for range "grass" {
		updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		model = updated.(explorerModel)
	}
	if len(model.rows) != 6 {
		t.Errorf("rows after backspacing = %d, want 6", len(model.rows))
	}

	model = typeString(t, model, "4")
	if len(model.rows) != 1 || model.rows[0] != 4 {
		t.Errorf("rows filtered by index = %v, want [4]", model.rows)
	}
}

func TestExplorer_FocusToggle(t *testing.T) {
	model := testExplorer(t)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(explorerModel)
	if model.focus != focusDetail {
		t.Fatalf("focus after tab = %v, want detail", model.focus)
	}

	// List keys scroll the viewport now, not the selection.
	model = typeString(t, model, "j")
	if model.cursor != 0 {
		t.Errorf("cursor moved while detail focused: %d", model.cursor)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(explorerModel)
	if model.focus != focusList {
		t.Errorf("focus after second tab = %v, want list", model.focus)
	}
}

func TestExplorer_Quit(t *testing.T) {
	model := testExplorer(t)

	_, command := model.Update(keyPress('q'))
	if command == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Error("q did not produce a quit message")
	}

	// ctrl+c quits even while the filter has focus.
	updated, _ := model.Update(keyPress('/'))
	model = updated.(explorerModel)
	_, command = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if command == nil {
		t.Fatal("ctrl+c produced no command")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not produce a quit message")
	}

	// 'q' is a plain character in filter mode.
	updated, _ = model.Update(keyPress('q'))
	model = updated.(explorerModel)
	if model.filterText != "q" {
		t.Errorf("filter text = %q, want q", model.filterText)
	}
}

func TestExplorer_View(t *testing.T) {
	model := newExplorer(sampleDocument(t), "zone.wld")
	if view := model.View(); view != "Loading..." {
		t.Errorf("view before sizing = %q, want Loading...", view)
	}

	model = testExplorer(t)
	view := model.View()

	for _, want := range []string{
		"zone.wld", "6 fragments",
		"TextureImages", "Mesh",
		"GRASS_SPRITE",
		"GRASS.BMP", // detail pane shows the first fragment
		"quit",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestExplorer_ViewWhileFiltering(t *testing.T) {
	model := testExplorer(t)
	model = typeString(t, model, "/")
	model = typeString(t, model, "zone")

	view := model.View()
	if !strings.Contains(view, "/ zone") {
		t.Error("view missing the filter input line")
	}
	if !strings.Contains(view, "ZONE_BOUNDS") {
		t.Error("view missing the matching row")
	}
}
