package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tmplgen/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "types", "seed", "strict", "edit", "clear", "quit"}

// placeholder describes the placeholder under the cursor, if any.
type placeholder struct {
	inside    bool // cursor follows an unclosed "${"
	inID      bool // cursor is inside the "<id>" prefix
	inArgs    bool // cursor follows the ":" separating the arguments
	pathStart int  // byte offset of the type path
	pathEnd   int  // byte offset just past the type path
	argIndex  int  // 0-based index of the argument under the cursor
}

// path returns the type path text of p within input.
func (p placeholder) path(input string) string {
	return input[p.pathStart:p.pathEnd]
}

// placeholderAt locates the placeholder that the cursor is editing. The
// placeholder opens at the last "${" before the cursor and must not be
// closed before it.
func placeholderAt(input string, cursor int) placeholder {
	cursor = min(max(cursor, 0), len(input))

	open := strings.LastIndex(input[:cursor], "${")
	if open < 0 || strings.Contains(input[open:cursor], "}") {
		return placeholder{}
	}

	p := placeholder{inside: true, pathStart: open + 2}

	if strings.HasPrefix(input[p.pathStart:], "<") {
		end := strings.IndexByte(input[p.pathStart:cursor], '>')
		if end < 0 {
			p.inID = true
			p.pathEnd = p.pathStart

			return p
		}

		p.pathStart += end + 1
	}

	// The path ends at "}" or at a ":" that is not part of a "::" separator.
	p.pathEnd = p.pathStart
	for p.pathEnd < len(input) && input[p.pathEnd] != '}' {
		if input[p.pathEnd] == ':' {
			if !strings.HasPrefix(input[p.pathEnd:], "::") {
				break
			}

			p.pathEnd++
		}

		p.pathEnd++
	}

	if p.pathEnd < cursor && input[p.pathEnd] == ':' {
		p.inArgs = true
		p.argIndex = strings.Count(input[p.pathEnd+1:cursor], ",")
	}

	return p
}

// wordBounds returns the whitespace-delimited word at the cursor position
// and its byte boundaries within input.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r == ' ' || r == '\t' {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if r == ' ' || r == '\t' {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// allMatches returns every candidate as an unfiltered match.
func allMatches(candidates []string) fuzzy.Matches {
	matches := make(fuzzy.Matches, len(candidates))
	for i, c := range candidates {
		matches[i] = fuzzy.Match{Str: c, Index: i}
	}

	return matches
}

// computeMatches calculates the fuzzy match results for the text at the
// cursor. In template mode only the type path of an open placeholder is
// completed; an empty path lists every type. In control mode the first word
// is completed against the command names.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	if m.mode == modeCtrl {
		word, ws, we := wordBounds(input, cursor)
		if word == "" || ws > 0 {
			return nil, nil, ws, we
		}

		return fuzzy.Find(word, ctrlCommands), ctrlCommands, ws, we
	}

	p := placeholderAt(input, cursor)
	if !p.inside || p.inID || p.inArgs {
		return nil, nil, cursor, cursor
	}

	candidates = lang.Paths()
	query := input[p.pathStart:cursor]

	if query == "" {
		return allMatches(candidates), candidates, p.pathStart, p.pathEnd
	}

	matches = fuzzy.Find(query, candidates)

	// A complete path that no other path extends needs no completion.
	if len(matches) == 1 && matches[0].Str == p.path(input) {
		return nil, nil, p.pathStart, p.pathEnd
	}

	return matches, candidates, p.pathStart, p.pathEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
