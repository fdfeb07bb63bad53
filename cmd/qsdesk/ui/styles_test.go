package ui

import (
	"strings"
	"testing"
)

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Error("dark name resolved light")
	}
	if ThemeByName("LIGHT").IsDark {
		t.Error("light name resolved dark")
	}
}

func TestDetectThemeFromColorFgBg(t *testing.T) {
	t.Setenv("QSDESK_LIGHT_MODE", "")

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("high background index should detect light")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("low background index should detect dark")
	}

	// Unknown: default dark.
	t.Setenv("COLORFGBG", "")
	if !DetectTheme().IsDark {
		t.Error("default theme should be dark")
	}
}

func TestSimpleTableView(t *testing.T) {
	t.Parallel()

	table := NewSimpleTable("Matched Row", []string{"Ref", "Item", "Total"})
	table.AddRow("row-3", "VO-003: Steel Waste Percentage", "7,200.00")

	out := table.View(NewStyles(DarkTheme()))
	for _, want := range []string{"Matched Row", "Ref", "row-3", "7,200.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLogoRendersWordmark(t *testing.T) {
	t.Parallel()

	out := Logo(NewStyles(DarkTheme()))
	if !strings.Contains(out, `/ _ \/ ___|`) {
		t.Errorf("wordmark art missing from %q", out)
	}
}

func TestSimpleTableEmpty(t *testing.T) {
	t.Parallel()

	table := NewSimpleTable("Empty", []string{"A"})
	if got := table.View(NewStyles(DarkTheme())); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}
