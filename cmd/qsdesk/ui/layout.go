// Package ui layout constants and pane width math for the three-pane
// workspace.
package ui

// LayoutPreset selects one of the fixed panel-width arrangements chosen on
// the console screen.
type LayoutPreset int

const (
	LayoutBalanced LayoutPreset = iota
	LayoutSheetFocus
	LayoutEvidenceFocus
)

// String returns the display name for the preset.
func (p LayoutPreset) String() string {
	switch p {
	case LayoutSheetFocus:
		return "Sheet Focus"
	case LayoutEvidenceFocus:
		return "Evidence Focus"
	default:
		return "Balanced"
	}
}

// Pane width fractions per preset. The center pane takes the remainder.
const (
	balancedLeftRatio  = 0.25
	balancedRightRatio = 0.25

	sheetFocusLeftRatio  = 0.15
	sheetFocusRightRatio = 0.20

	evidenceFocusLeftRatio  = 0.40
	evidenceFocusRightRatio = 0.20

	// Arbitration mode narrows the evidence pane regardless of preset.
	arbitrationLeftRatio = 1.0 / 6.0

	// Minimum usable pane widths in cells.
	MinLeftPaneWidth   = 20
	MinRightPaneWidth  = 24
	MinCenterPaneWidth = 40

	// Fixed chrome heights.
	HeaderHeight = 3
	FooterHeight = 2

	// Responsive breakpoints.
	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
)

// PaneWidths computes the left/center/right pane widths for the given
// terminal width. Widths are a pure function of preset and arbitration flag.
// The center pane always takes the true remainder so the three panes never
// exceed the terminal; when that remainder falls below MinCenterPaneWidth,
// width is reclaimed from side panes still above their own minimums, and the
// center simply stays narrow if there is nothing left to reclaim.
func PaneWidths(preset LayoutPreset, arbitration bool, totalWidth int) (left, center, right int) {
	var leftRatio, rightRatio float64
	switch preset {
	case LayoutSheetFocus:
		leftRatio, rightRatio = sheetFocusLeftRatio, sheetFocusRightRatio
	case LayoutEvidenceFocus:
		leftRatio, rightRatio = evidenceFocusLeftRatio, evidenceFocusRightRatio
	default:
		leftRatio, rightRatio = balancedLeftRatio, balancedRightRatio
	}
	if arbitration {
		leftRatio = arbitrationLeftRatio
	}

	left = int(float64(totalWidth) * leftRatio)
	right = int(float64(totalWidth) * rightRatio)
	if left < MinLeftPaneWidth {
		left = MinLeftPaneWidth
	}
	if right < MinRightPaneWidth {
		right = MinRightPaneWidth
	}

	center = totalWidth - left - right
	for center < MinCenterPaneWidth && left > MinLeftPaneWidth {
		left--
		center++
	}
	for center < MinCenterPaneWidth && right > MinRightPaneWidth {
		right--
		center++
	}
	if center < 1 {
		center = 1
	}
	return left, center, right
}

// ContentHeight returns the height available to the panes for the given
// terminal height.
func ContentHeight(totalHeight int) int {
	h := totalHeight - HeaderHeight - FooterHeight
	if h < 1 {
		h = 1
	}
	return h
}
