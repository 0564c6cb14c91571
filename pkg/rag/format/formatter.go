// Package format turns a raw model completion into a structured
// response: narrative sections, fenced code blocks, inline code spans,
// and the citations for the passages that grounded the prompt.
//
// Parsing is purely lexical and total: any input, balanced fences or
// not, yields a valid Structured value.
package format

import (
	"regexp"
	"strings"
)

type CodeBlock struct {
	Language string `json:"language"`
	Content  string `json:"content"`
}

type Structured struct {
	Sections   []string    `json:"sections"`
	CodeBlocks []CodeBlock `json:"code_blocks"`
	InlineCode []string    `json:"inline_code,omitempty"`
	Sources    []string    `json:"sources,omitempty"`
	Raw        string      `json:"raw"`
}

// DefaultLanguage is used when a fence carries no tag or one we do not
// recognize.
const DefaultLanguage = "code"

var knownLanguages = map[string]bool{
	"python": true, "go": true, "golang": true, "javascript": true,
	"js": true, "typescript": true, "ts": true, "java": true,
	"c": true, "cpp": true, "c++": true, "csharp": true, "rust": true,
	"ruby": true, "php": true, "swift": true, "kotlin": true,
	"scala": true, "haskell": true, "r": true, "matlab": true,
	"bash": true, "sh": true, "shell": true, "sql": true,
	"json": true, "yaml": true, "toml": true, "xml": true,
	"html": true, "css": true, "text": true,
}

var inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")

type parserState int

const (
	inNarrative parserState = iota
	inFence
)

// Parse lexes raw into alternating narrative and code segments and
// attaches sources as given. Sources are the identifiers of the
// passages that were embedded into the prompt, not a re-derivation from
// the completion text.
func Parse(raw string, sources []string) Structured {
	out := Structured{
		Sections:   []string{},
		CodeBlocks: []CodeBlock{},
		Sources:    dedupe(sources),
		Raw:        strings.TrimSpace(raw),
	}
	if out.Raw == "" {
		return out
	}

	var (
		state    = inNarrative
		narr     []string
		code     []string
		language string
	)

	flushNarrative := func() {
		section := strings.TrimSpace(strings.Join(narr, "\n"))
		narr = narr[:0]
		if section == "" {
			return
		}
		out.Sections = append(out.Sections, section)
		for _, m := range inlineCodePattern.FindAllStringSubmatch(section, -1) {
			out.InlineCode = append(out.InlineCode, m[1])
		}
	}
	flushCode := func() {
		out.CodeBlocks = append(out.CodeBlocks, CodeBlock{
			Language: language,
			Content:  strings.TrimRight(strings.Join(code, "\n"), "\n"),
		})
		code = code[:0]
	}

	for _, line := range strings.Split(out.Raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch state {
		case inNarrative:
			if strings.HasPrefix(trimmed, "```") {
				flushNarrative()
				language = normalizeLanguage(strings.TrimPrefix(trimmed, "```"))
				state = inFence
				continue
			}
			narr = append(narr, line)
		case inFence:
			if trimmed == "```" {
				flushCode()
				state = inNarrative
				continue
			}
			code = append(code, line)
		}
	}

	// Unterminated fence: keep the collected lines as a code block
	// rather than dropping them.
	if state == inFence {
		flushCode()
	} else {
		flushNarrative()
	}

	return out
}

// Summary joins the narrative sections, giving a plain-text rendition
// of the answer without its code.
func (s Structured) Summary() string {
	return strings.Join(s.Sections, "\n\n")
}

func (s Structured) HasCode() bool {
	return len(s.CodeBlocks) > 0
}

func normalizeLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if knownLanguages[tag] {
		return tag
	}
	return DefaultLanguage
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
