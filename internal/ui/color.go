package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle     = lipgloss.NewStyle().Faint(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	foldedStyle  = lipgloss.NewStyle().Faint(true)
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func DelLine(w io.Writer, path string) {
	fmt.Fprintln(w, errStyle.Render("del")+"  "+path)
}

func ErrorLine(w io.Writer, err error) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+err.Error())
}

func SummaryLine(w io.Writer, files, sections int) {
	fmt.Fprintf(w, "synced %d files, %d sections\n", files, sections)
}

// SectionRow prints one row of the section listing with padded columns.
func SectionRow(w io.Writer, fileName, kind, lines, name string, fileWidth, kindWidth, linesWidth int) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		padRight(fileName, fileWidth),
		kindStyle.Render(padRight(kind, kindWidth)),
		padRight(lines, linesWidth),
		name,
	)
}

func ShowHeader(w io.Writer, fileName string, lines int) {
	fmt.Fprintln(w, headerStyle.Render(fileName)+fmt.Sprintf("  (%d lines)", lines))
}

// ShowFold prints a section as it would appear collapsed in an editor.
func ShowFold(w io.Writer, depth int, keyword, name string, startLine, endLine int) {
	header := keyword + ":"
	if name != "" {
		header += " " + name
	}
	folded := ""
	if hidden := endLine - startLine; hidden > 0 {
		folded = foldedStyle.Render(fmt.Sprintf(" ... %d more lines", hidden))
	}
	fmt.Fprintf(w, "%4d-%-4d %s%s%s\n", startLine, endLine, strings.Repeat("  ", depth), header, folded)
}

func RangeLine(w io.Writer, offset, length int) {
	fmt.Fprintf(w, "%d %d\n", offset, length)
}

func StatusCount(w io.Writer, label string, count int) {
	fmt.Fprintf(w, "  %s: %d\n", label, count)
}

func StatusTotal(w io.Writer, label string, count int) {
	fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("%s: %d", label, count)))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
