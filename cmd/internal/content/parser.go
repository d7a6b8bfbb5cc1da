// Package content splits journal text into plain text and fenced code blocks
// so that code can be rendered apart from the surrounding prose.
package content

import "strings"

type BlockType string

const (
	BlockText BlockType = "text"
	BlockCode BlockType = "code"
)

// DefaultLanguage is used for fences opened without a language tag.
const DefaultLanguage = "javascript"

const fence = "```"

type Block struct {
	Type     BlockType `json:"type"`
	Language string    `json:"language,omitempty"`
	Content  string    `json:"content"`
}

func Text(s string) Block {
	return Block{Type: BlockText, Content: s}
}

func Code(language, code string) Block {
	return Block{Type: BlockCode, Language: language, Content: code}
}

// Parse scans content line by line for fenced code regions and returns the
// blocks in order of appearance.
//
// A fence opens on a line made of three backticks and an optional language
// tag, and closes on the next line starting with three backticks. Text
// blocks keep their raw text; code blocks are trimmed. A fence that is never
// closed is treated as plain text.
//
// When no fence is found Parse returns nil and callers should render the
// whole string with Paragraphs.
func Parse(content string) []Block {
	var (
		blocks   []Block
		found    bool
		last     int
		open     = -1
		bodyFrom int
		lang     string
	)

	for pos := 0; pos < len(content); {
		lineEnd, next := len(content), len(content)
		terminated := false
		if i := strings.IndexByte(content[pos:], '\n'); i >= 0 {
			lineEnd, next = pos+i, pos+i+1
			terminated = true
		}
		line := content[pos:lineEnd]

		if open < 0 {
			if tag, ok := openingFence(line); ok && terminated {
				open, bodyFrom, lang = pos, next, tag
			}
		} else if indent, ok := closingFence(line); ok {
			closeAt := pos + indent
			blocks = appendText(blocks, content[last:open])
			blocks = append(blocks, Code(languageOrDefault(lang), strings.TrimSpace(content[bodyFrom:closeAt])))
			found = true
			last = closeAt + len(fence)
			open = -1
		}
		pos = next
	}

	if !found {
		return nil
	}
	return appendText(blocks, content[last:])
}

// Paragraphs splits text into one paragraph per line. Blank lines are kept
// as empty paragraphs.
func Paragraphs(text string) []string {
	return strings.Split(text, "\n")
}

func openingFence(line string) (string, bool) {
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, fence) {
		return "", false
	}

	tag := line[len(fence):]
	for i := 0; i < len(tag); i++ {
		if !isWordChar(tag[i]) {
			return "", false
		}
	}
	return tag, true
}

func closingFence(line string) (int, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, fence) {
		return 0, false
	}
	return len(line) - len(trimmed), true
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func languageOrDefault(tag string) string {
	if tag == "" {
		return DefaultLanguage
	}
	return tag
}

func appendText(blocks []Block, s string) []Block {
	if strings.TrimSpace(s) == "" {
		return blocks
	}
	return append(blocks, Text(s))
}
