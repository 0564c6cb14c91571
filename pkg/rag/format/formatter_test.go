package format

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantSections   []string
		wantCodeBlocks []CodeBlock
		wantInlineCode []string
	}{
		{
			name:           "plain text produces one section",
			raw:            "The answer is linear time.",
			wantSections:   []string{"The answer is linear time."},
			wantCodeBlocks: []CodeBlock{},
		},
		{
			name:           "empty input",
			raw:            "   \n\t  ",
			wantSections:   []string{},
			wantCodeBlocks: []CodeBlock{},
		},
		{
			name: "narrative code narrative",
			raw:  "Use `quicksort`.\n```python\ndef f(): pass\n```\nDone.",
			wantSections: []string{
				"Use `quicksort`.",
				"Done.",
			},
			wantCodeBlocks: []CodeBlock{
				{Language: "python", Content: "def f(): pass"},
			},
			wantInlineCode: []string{"quicksort"},
		},
		{
			name:         "untagged fence falls back to the generic language",
			raw:          "```\nx = 1\n```",
			wantSections: []string{},
			wantCodeBlocks: []CodeBlock{
				{Language: "code", Content: "x = 1"},
			},
		},
		{
			name:         "unrecognized tag falls back to the generic language",
			raw:          "```brainfuzz\n+++\n```",
			wantSections: []string{},
			wantCodeBlocks: []CodeBlock{
				{Language: "code", Content: "+++"},
			},
		},
		{
			name:         "unterminated fence keeps the tail as code",
			raw:          "Intro.\n```go\nfunc main() {}",
			wantSections: []string{"Intro."},
			wantCodeBlocks: []CodeBlock{
				{Language: "go", Content: "func main() {}"},
			},
		},
		{
			name:         "adjacent fences in original order",
			raw:          "```python\na\n```\n```go\nb\n```",
			wantSections: []string{},
			wantCodeBlocks: []CodeBlock{
				{Language: "python", Content: "a"},
				{Language: "go", Content: "b"},
			},
		},
		{
			name:         "indented fence still opens a block",
			raw:          "Steps:\n  ```bash\n  ls\n```",
			wantSections: []string{"Steps:"},
			wantCodeBlocks: []CodeBlock{
				{Language: "bash", Content: "  ls"},
			},
		},
		{
			name:           "inline code does not split the section",
			raw:            "Call `init()` then `run()` in order.",
			wantSections:   []string{"Call `init()` then `run()` in order."},
			wantCodeBlocks: []CodeBlock{},
			wantInlineCode: []string{"init()", "run()"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw, nil)

			if !reflect.DeepEqual(got.Sections, tt.wantSections) {
				t.Errorf("Sections = %q, want %q", got.Sections, tt.wantSections)
			}
			if !reflect.DeepEqual(got.CodeBlocks, tt.wantCodeBlocks) {
				t.Errorf("CodeBlocks = %v, want %v", got.CodeBlocks, tt.wantCodeBlocks)
			}
			if !reflect.DeepEqual(got.InlineCode, tt.wantInlineCode) {
				t.Errorf("InlineCode = %q, want %q", got.InlineCode, tt.wantInlineCode)
			}
		})
	}
}

func TestParseFenceCount(t *testing.T) {
	raw := "a\n```python\n1\n```\nb\n```go\n2\n```\nc\n```sql\n3\n```\nd"
	got := Parse(raw, nil)

	if len(got.CodeBlocks) != 3 {
		t.Fatalf("CodeBlocks = %d, want 3", len(got.CodeBlocks))
	}
	wantLangs := []string{"python", "go", "sql"}
	for i, cb := range got.CodeBlocks {
		if cb.Language != wantLangs[i] {
			t.Errorf("CodeBlocks[%d].Language = %q, want %q", i, cb.Language, wantLangs[i])
		}
	}
	if len(got.Sections) != 4 {
		t.Errorf("Sections = %d, want 4", len(got.Sections))
	}
}

func TestParseSources(t *testing.T) {
	got := Parse("answer", []string{"paper-a.pdf", "paper-b.pdf", "paper-a.pdf", ""})

	want := []string{"paper-a.pdf", "paper-b.pdf"}
	if !reflect.DeepEqual(got.Sources, want) {
		t.Errorf("Sources = %q, want %q", got.Sources, want)
	}
}

func TestSummaryAndHasCode(t *testing.T) {
	got := Parse("Before.\n```python\npass\n```\nAfter.", nil)

	if !got.HasCode() {
		t.Error("HasCode() = false, want true")
	}
	if got.Summary() != "Before.\n\nAfter." {
		t.Errorf("Summary() = %q", got.Summary())
	}
}
