package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"devjournal/cmd/internal/client"
	"devjournal/cmd/internal/content"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiRed   = "\x1b[31m"
	ansiCyan  = "\x1b[36m"
)

func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return code + s + ansiReset
}

// shortDate renders "Mar 1, 2024", longDate "March 1, 2024".
func shortDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

func longDate(t time.Time) string {
	return t.Local().Format("January 2, 2006")
}

func renderList(w io.Writer, entries []*client.Entry, color bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, paint(color, ansiBold, "Start your learning journey"))
		fmt.Fprintln(w, "Create your first entry to begin building your technical knowledge base:")
		fmt.Fprintln(w, `  journal create --title "My first entry"`)
		return
	}

	noun := "entries"
	if len(entries) == 1 {
		noun = "entry"
	}
	fmt.Fprintf(w, "%s (%d %s)\n\n", paint(color, ansiBold, "All Entries"), len(entries), noun)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCREATED\tID")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Title, shortDate(e.CreatedAt), e.ID)
	}
	_ = tw.Flush()
}

func renderEntry(w io.Writer, e *client.Entry, color bool) {
	fmt.Fprintln(w, paint(color, ansiBold, e.Title))

	dates := "Created on " + longDate(e.CreatedAt)
	if !e.UpdatedAt.Equal(e.CreatedAt) {
		dates += ", updated on " + longDate(e.UpdatedAt)
	}
	fmt.Fprintln(w, paint(color, ansiDim, dates))
	fmt.Fprintln(w, paint(color, ansiDim, "ID: "+e.ID))
	fmt.Fprintln(w)

	renderContent(w, e.Content, color)
}

// renderContent prints text blocks one paragraph per line and code blocks
// framed under their language tag. The single line break joining a text
// block to a neighbouring fence belongs to the fence and is not printed;
// every other blank line is.
func renderContent(w io.Writer, raw string, color bool) {
	blocks := content.Parse(raw)
	if blocks == nil {
		for _, p := range content.Paragraphs(raw) {
			fmt.Fprintln(w, p)
		}
		return
	}

	for i, b := range blocks {
		switch b.Type {
		case content.BlockText:
			text := b.Content
			if i > 0 {
				text = strings.TrimPrefix(text, "\n")
			}
			if i < len(blocks)-1 {
				text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			}
			for _, p := range content.Paragraphs(text) {
				fmt.Fprintln(w, p)
			}

		case content.BlockCode:
			fmt.Fprintf(w, "%s\n", paint(color, ansiCyan, "┌─ "+b.Language))
			if b.Content != "" {
				for _, line := range strings.Split(b.Content, "\n") {
					fmt.Fprintf(w, "%s %s\n", paint(color, ansiCyan, "│"), line)
				}
			}
			fmt.Fprintln(w, paint(color, ansiCyan, "└─"))
		}
	}
}
