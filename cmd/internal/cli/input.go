package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"devjournal/cmd/internal/contract"
)

// endOfInput ends content typed on stdin when it appears alone on a line.
const endOfInput = "."

// GetSimpleText prints a prompt to w and reads a single trimmed line.
// If EOF occurs after some input was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadContent reads lines until EOF or a line holding only ".".
// Line breaks inside the text are kept as typed.
func ReadContent(reader *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")

		if trimmed == endOfInput {
			break
		}
		if line != "" {
			lines = append(lines, trimmed)
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Confirm asks a yes/no question; anything but y or yes (including EOF)
// counts as no.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) bool {
	fmt.Fprint(w, prompt)

	answer, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// validateInput mirrors the server rules so obvious mistakes are caught
// before a request is made.
func validateInput(title, content string) []contract.FieldError {
	var details []contract.FieldError

	title = strings.TrimSpace(title)
	switch {
	case title == "":
		details = append(details, contract.FieldError{Field: "title", Message: "Please add a title to your entry"})
	case utf8.RuneCountInString(title) > contract.MaxTitleLength:
		details = append(details, contract.FieldError{Field: "title", Message: "Title must be 255 characters or less"})
	}

	content = strings.TrimSpace(content)
	switch {
	case content == "":
		details = append(details, contract.FieldError{Field: "content", Message: "Please add some content to your entry"})
	case utf8.RuneCountInString(content) > contract.MaxContentLength:
		details = append(details, contract.FieldError{Field: "content", Message: "Content must be 50,000 characters or less"})
	}
	return details
}

// saveDraft writes what the user typed to a new file in dir (the system
// temp dir when empty) and returns its path.
func saveDraft(dir, title, content string) (string, error) {
	f, err := os.CreateTemp(dir, "journal-draft-*.md")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "# %s\n\n%s\n", title, content); err != nil {
		return "", err
	}
	return f.Name(), nil
}
