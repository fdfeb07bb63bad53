package workspace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsdesk/internal/domain"
)

// renderEvidencePane draws the left pane: either the evidence collection list
// or, when a document is open, the document viewer. The two states are
// mutually exclusive.
func (m Model) renderEvidencePane(width, height int) string {
	var body string
	if m.activeDocID != "" {
		body = m.renderDocViewer(width - 4)
	} else {
		body = m.renderDocList(width - 4)
	}

	style := m.styles.Panel.Width(width - 2).Height(height - 2)
	if m.focus == FocusEvidence {
		style = style.BorderForeground(m.styles.Theme.Accent)
	}
	return style.Render(body)
}

func (m Model) renderDocList(width int) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Evidence Locker"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d documents", len(m.documents))))
	sb.WriteString("\n\n")

	for i, doc := range m.documents {
		sb.WriteString(m.renderDocEntry(doc, i == m.docCursor && m.focus == FocusEvidence, width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("u: import local file"))
	return sb.String()
}

func (m Model) renderDocEntry(doc domain.DocumentFile, selected bool, width int) string {
	tag := m.kindTag(doc.Kind)
	name := doc.Name
	if doc.IsUploaded {
		name = "↑ " + name
	}
	line := tag + " " + name
	if lipgloss.Width(line) > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}

	meta := m.styles.Muted.Render("  " + doc.Date + " · " + doc.Preview)
	if lipgloss.Width(meta) > width {
		meta = lipgloss.NewStyle().MaxWidth(width).Render(meta)
	}

	if selected {
		return m.styles.Selected.Render(line) + "\n" + meta
	}
	return m.styles.Body.Render(line) + "\n" + meta
}

func (m Model) kindTag(kind domain.DocKind) string {
	switch kind {
	case domain.KindContract:
		return m.styles.Badge.Render("CON")
	case domain.KindPDF:
		return m.styles.Badge.Render("PDF")
	case domain.KindEmail:
		return m.styles.Info.Render("[EML]")
	case domain.KindImage:
		return m.styles.Warning.Render("[IMG]")
	}
	return ""
}

func (m Model) renderDocViewer(width int) string {
	doc, ok := m.findDocument(m.activeDocID)
	if !ok {
		return m.styles.Muted.Render("Select a document")
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(doc.Name),
		m.styles.Subtitle.Render(doc.Kind.String()+" · "+doc.Date),
		m.styles.RenderDivider(width),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.docVP.View())
}

func (m Model) findDocument(id string) (domain.DocumentFile, bool) {
	for _, d := range m.documents {
		if d.ID == id {
			return d, true
		}
	}
	return domain.DocumentFile{}, false
}

// renderDocContent produces the page body for the open document. Seed
// documents carry fixed mock bodies keyed by identifier; uploads render a
// staged-file placeholder since the terminal cannot display binary content.
func (m Model) renderDocContent(width int) string {
	doc, ok := m.findDocument(m.activeDocID)
	if !ok {
		return ""
	}

	if doc.IsUploaded {
		label := "Staged document"
		if doc.Kind == domain.KindImage {
			label = "Staged image"
		}
		return m.styles.Muted.Render(fmt.Sprintf(
			"%s\n\n%s\n\nLocal copy: %s\n\nThis file was imported for this session only.\nIt is removed when the session ends.",
			label, doc.Preview, doc.URL))
	}

	body, ok := seedDocBodies[doc.ID]
	if !ok {
		body = doc.Preview
	}
	return wrapText(body, width)
}

// seedDocBodies are the fixed page bodies for the demo evidence documents.
var seedDocBodies = map[string]string{
	"CON-001": `CLAUSE 12: MEASUREMENT AND EVALUATION

12.1 Works to be Measured
The Works shall be measured, and valued for payment, in accordance with
this Clause. Whenever the Engineer requires any part of the Works to be
measured, reasonable notice shall be given to the Contractor's
Representative.

12.2 Method of Measurement
Measurement shall be made of the net actual quantity of each item of the
Permanent Works. Wastage allowances on structural steel shall not exceed
3% of measured tonnage unless substantiated by site records and approved
in writing by the Engineer.

12.3 Evaluation
The Engineer shall proceed to agree or determine the Contract Price by
evaluating each item of work, applying the measurement agreed or
determined in accordance with Sub-Clauses 12.1 and 12.2.`,

	"INV-405": `TAX INVOICE — INV-405

Supplier: SteelFab Industries Ltd.
Project: Alpha — Structural Package

  Qty      Description                          Unit       Amount
  45.0 t   High tensile steel reinforcement     1,180.00   53,100.00
   2.3 t   Cutting / bending waste                990.00    2,277.00
           Expedited delivery surcharge                     1,750.00

  Subtotal                                                 57,127.00
  VAT (5%)                                                  2,856.35
  TOTAL DUE                                                59,983.35

Waste tonnage charged at supplier yard rate per agreed schedule.`,

	"EML-54": `From: M. Haddad <m.haddad@alphajv.example>
To: QS Team
Subject: Re: VO-003 Methodology

Team,

The consultant rejects the waste percentage applied. Site measurement
puts the offcut tonnage at roughly 5% of total steel mass against the
3% allowance in Clause 12.2. The fabricator's cutting schedule changed
after the Rev C drawings; that is the driver, not site handling.

Book the delta under VO-003 and keep the delivery tickets with the
claim file. The Engineer has asked for substantiation before approving
anything above the allowance.

M.`,

	"RPT-EXP": `EXPERT WITNESS REPORT V2 (EXTRACT)

3.1 The claimed wastage of 5% exceeds the contractual allowance of 3%
under Clause 12.2 of Contract A. The excess 2% underlies the disputed
VO-003 adjustment of 7,200.00 in the consolidated budget.

3.2 The fabrication records show the Rev C drawing change occurred after
mill orders were placed. In my opinion the additional offcut volume is
attributable to the design change and not to the Contractor's site
practice.

3.3 I consider the rate applied to the waste tonnage reasonable and
consistent with the supplier schedule in evidence (INV-405). The
disruption claims in Sector 4 are assessed separately at Section 5.`,
}

// formatUploadPreview is the list-row preview text for an imported file.
func formatUploadPreview(sizeKB float64) string {
	return fmt.Sprintf("Uploaded local file (%.1f KB)", sizeKB)
}

// wrapText soft-wraps plain text to the given width, preserving blank lines.
func wrapText(s string, width int) string {
	if width < 16 {
		width = 16
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if lipgloss.Width(line) <= width {
			out = append(out, line)
			continue
		}
		words := strings.Fields(line)
		cur := ""
		for _, w := range words {
			if cur == "" {
				cur = w
			} else if lipgloss.Width(cur)+1+lipgloss.Width(w) <= width {
				cur += " " + w
			} else {
				out = append(out, cur)
				cur = w
			}
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return strings.Join(out, "\n")
}
