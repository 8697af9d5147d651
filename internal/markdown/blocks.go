// Package markdown renders model-produced report markdown to HTML.
//
// The dialect is deliberately small: blank-line-separated blocks classified
// as table, heading (levels 1-3), blockquote, flat list, or paragraph, with
// bold/italic/link/bare-URL spans inside text runs. Anything that fails to
// classify falls through to a paragraph; there is no error path. Raw HTML in
// the input passes through untouched; callers own that trust boundary.
package markdown

import "strings"

// BlockKind identifies how a block is rendered.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindBlockquote
	KindUnorderedList
	KindOrderedList
	KindTable
)

// Block is one blank-line-separated unit of a report. Blocks are immutable
// after classification; rendering is a pure function of Raw.
type Block struct {
	Kind BlockKind
	Raw  string

	// Heading fields.
	Level int
	Text  string

	// Blockquote lines with the leading > stripped.
	Lines []string

	// List items with list markers stripped.
	Items []string

	// Table cells. Header is row zero; Rows are the rows after the
	// separator line.
	Header []string
	Rows   [][]string
}

// Split divides report text into trimmed, non-empty blocks on blank-line
// boundaries, preserving source order. A code fence wrapping the entire text
// (a common model-output artifact) is stripped first.
func Split(text string) []string {
	text = stripWrappingFence(strings.TrimSpace(text))

	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		if b := strings.TrimSpace(strings.Join(cur, "\n")); b != "" {
			blocks = append(blocks, b)
		}
		cur = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	return blocks
}

// stripWrappingFence removes a ``` fence that encloses the whole text.
// Fences around part of the text are left alone.
func stripWrappingFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	if strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return text
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}

// Classify determines a block's kind. Checks run in priority order and each
// failed check falls through to the next; the last resort is always a
// paragraph, never an error.
func Classify(raw string) Block {
	if b, ok := classifyTable(raw); ok {
		return b
	}
	if b, ok := classifyHeading(raw); ok {
		return b
	}
	if b, ok := classifyBlockquote(raw); ok {
		return b
	}
	if b, ok := classifyList(raw); ok {
		return b
	}
	return Block{Kind: KindParagraph, Raw: raw}
}

// classifyTable recognizes pipe tables. The first non-blank line must start
// with |, and a separator row (cells of dashes with optional colons) must
// appear below the header. A pipe-led block without a separator is not a
// table and falls through to paragraph handling.
func classifyTable(raw string) (Block, bool) {
	first := firstNonBlankLine(raw)
	if !strings.HasPrefix(strings.TrimSpace(first), "|") {
		return Block{}, false
	}

	var pipeLines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			pipeLines = append(pipeLines, line)
		}
	}

	sep := -1
	for i, line := range pipeLines {
		if i == 0 {
			continue
		}
		if isSeparatorRow(splitRow(line)) {
			sep = i
			break
		}
	}
	if sep <= 0 {
		return Block{}, false
	}

	header := splitRow(pipeLines[0])
	var rows [][]string
	for _, line := range pipeLines[sep+1:] {
		cells := splitRow(line)
		if allEmpty(cells) {
			continue
		}
		rows = append(rows, cells)
	}

	return Block{Kind: KindTable, Raw: raw, Header: header, Rows: rows}, true
}

// splitRow splits a table row on every pipe. A literal | inside cell content
// is not escapable, matching the provider's actual table output. The empty
// outer fields produced by the leading and trailing pipes are dropped and
// the remaining cells trimmed.
func splitRow(line string) []string {
	cells := strings.Split(strings.TrimSpace(line), "|")
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// isSeparatorRow reports whether every cell consists of dashes and optional
// alignment colons, with at least one dash per cell.
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		dashes := 0
		for _, r := range cell {
			switch r {
			case '-':
				dashes++
			case ':':
			default:
				return false
			}
		}
		if dashes == 0 {
			return false
		}
	}
	return true
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func firstNonBlankLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// classifyHeading checks markers from most to least specific so that "# "
// never claims a "## " or "### " block.
func classifyHeading(raw string) (Block, bool) {
	for _, m := range []struct {
		marker string
		level  int
	}{
		{"### ", 3},
		{"## ", 2},
		{"# ", 1},
	} {
		if strings.HasPrefix(raw, m.marker) {
			text := strings.TrimSpace(strings.TrimPrefix(raw, m.marker))
			text = strings.Join(strings.Fields(text), " ")
			return Block{Kind: KindHeading, Raw: raw, Level: m.level, Text: text}, true
		}
	}
	return Block{}, false
}

// classifyBlockquote requires every line of the block to carry the > marker.
func classifyBlockquote(raw string) (Block, bool) {
	lines := strings.Split(raw, "\n")
	stripped := make([]string, 0, len(lines))
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if !strings.HasPrefix(t, ">") {
			return Block{}, false
		}
		t = strings.TrimPrefix(t, ">")
		stripped = append(stripped, strings.TrimSpace(t))
	}
	return Block{Kind: KindBlockquote, Raw: raw, Lines: stripped}, true
}

// classifyList dispatches on the block's first line only; every line then
// becomes one item with its marker stripped when present. Nesting is not
// modeled.
func classifyList(raw string) (Block, bool) {
	lines := strings.Split(raw, "\n")
	first := strings.TrimSpace(lines[0])

	switch {
	case isUnorderedItem(first):
		items := make([]string, 0, len(lines))
		for _, line := range lines {
			items = append(items, stripUnorderedMarker(strings.TrimSpace(line)))
		}
		return Block{Kind: KindUnorderedList, Raw: raw, Items: items}, true
	case isOrderedItem(first):
		items := make([]string, 0, len(lines))
		for _, line := range lines {
			items = append(items, stripOrderedMarker(strings.TrimSpace(line)))
		}
		return Block{Kind: KindOrderedList, Raw: raw, Items: items}, true
	}
	return Block{}, false
}

func isUnorderedItem(line string) bool {
	if len(line) < 2 {
		return false
	}
	if line[0] != '*' && line[0] != '-' {
		return false
	}
	return line[1] == ' ' || line[1] == '\t'
}

func stripUnorderedMarker(line string) string {
	if isUnorderedItem(line) {
		return strings.TrimSpace(line[1:])
	}
	return line
}

func isOrderedItem(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return false
	}
	i++
	return i < len(line) && (line[i] == ' ' || line[i] == '\t')
}

func stripOrderedMarker(line string) string {
	if !isOrderedItem(line) {
		return line
	}
	i := 0
	for line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return strings.TrimSpace(line[i+1:])
}
