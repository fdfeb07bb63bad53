package ui

import "testing"

func TestPaneWidthsRatios(t *testing.T) {
	t.Parallel()

	left, center, right := PaneWidths(LayoutBalanced, false, 200)
	if left != 50 || right != 50 {
		t.Errorf("balanced: left=%d right=%d, want 50/50", left, right)
	}
	if center != 100 {
		t.Errorf("balanced: center=%d, want 100", center)
	}

	left, _, right = PaneWidths(LayoutSheetFocus, false, 200)
	if left != 30 || right != 40 {
		t.Errorf("sheet focus: left=%d right=%d, want 30/40", left, right)
	}

	left, _, _ = PaneWidths(LayoutEvidenceFocus, false, 200)
	if left != 80 {
		t.Errorf("evidence focus: left=%d, want 80", left)
	}
}

// Arbitration mode narrows the evidence pane to one sixth regardless of the
// chosen preset.
func TestPaneWidthsArbitration(t *testing.T) {
	t.Parallel()

	for _, preset := range []LayoutPreset{LayoutBalanced, LayoutSheetFocus, LayoutEvidenceFocus} {
		left, _, _ := PaneWidths(preset, true, 240)
		if left != 40 {
			t.Errorf("%s: left=%d, want 40", preset, left)
		}
	}
}

// At the declared minimum terminal size every preset must still fit: the
// three panes may never sum past the terminal width, or every workspace row
// wraps.
func TestPaneWidthsFitAtMinimumTerminal(t *testing.T) {
	t.Parallel()

	presets := []LayoutPreset{LayoutBalanced, LayoutSheetFocus, LayoutEvidenceFocus}
	for _, preset := range presets {
		for _, arbitration := range []bool{false, true} {
			left, center, right := PaneWidths(preset, arbitration, MinimumTerminalWidth)
			if sum := left + center + right; sum > MinimumTerminalWidth {
				t.Errorf("%s (arbitration=%v): panes sum to %d at terminal width %d (left=%d center=%d right=%d)",
					preset, arbitration, sum, MinimumTerminalWidth, left, center, right)
			}
			if left < MinLeftPaneWidth {
				t.Errorf("%s (arbitration=%v): left=%d below minimum", preset, arbitration, left)
			}
			if right < MinRightPaneWidth {
				t.Errorf("%s (arbitration=%v): right=%d below minimum", preset, arbitration, right)
			}
			if center < 1 {
				t.Errorf("%s (arbitration=%v): center=%d collapsed", preset, arbitration, center)
			}
		}
	}
}

// When the remainder is tight the center reclaims width from side panes that
// sit above their minimums instead of overflowing the terminal.
func TestPaneWidthsCenterReclaimsFromSides(t *testing.T) {
	t.Parallel()

	left, center, right := PaneWidths(LayoutEvidenceFocus, false, MinimumTerminalWidth)
	if left != MinLeftPaneWidth {
		t.Errorf("left=%d, want shrunk to minimum %d", left, MinLeftPaneWidth)
	}
	if left+center+right != MinimumTerminalWidth {
		t.Errorf("panes sum to %d, want exactly %d", left+center+right, MinimumTerminalWidth)
	}
}

func TestContentHeight(t *testing.T) {
	t.Parallel()

	if got := ContentHeight(30); got != 30-HeaderHeight-FooterHeight {
		t.Errorf("ContentHeight(30) = %d", got)
	}
	if got := ContentHeight(3); got != 1 {
		t.Errorf("ContentHeight(3) = %d, want clamp to 1", got)
	}
}

func TestLayoutPresetString(t *testing.T) {
	t.Parallel()

	want := map[LayoutPreset]string{
		LayoutBalanced:      "Balanced",
		LayoutSheetFocus:    "Sheet Focus",
		LayoutEvidenceFocus: "Evidence Focus",
	}
	for preset, name := range want {
		if got := preset.String(); got != name {
			t.Errorf("%d.String() = %q, want %q", preset, got, name)
		}
	}
}
