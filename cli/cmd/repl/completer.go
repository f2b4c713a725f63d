package repl

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/modulista/lang"
)

// isWordBoundary reports whether r separates completion words. Slashes
// separate the segments of a nested item name.
func isWordBoundary(r rune) bool {
	return r == ' ' || r == '\t' || r == '/'
}

// wordBounds returns the word around cursor and its byte offsets in input.
// The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// argPrefix returns the slash-separated list names typed before the word
// at wordStart, and whether the word is the command itself.
func argPrefix(input string, wordStart int) (prefix string, isCommand bool) {
	before := input[:wordStart]

	i := strings.LastIndexAny(before, " \t")
	if i < 0 && !strings.Contains(before, "/") {
		return "", true
	}

	return before[i+1:], false
}

// candidates returns the completions for the word at wordStart: command
// names for the first word, otherwise the names of items in the list the
// argument refers to.
func (s *session) candidates(ctx context.Context, input string, wordStart int) []string {
	prefix, isCommand := argPrefix(input, wordStart)
	if isCommand {
		return commandNames()
	}

	path := s.cwd

	if strings.HasPrefix(prefix, "/") {
		path = lang.RootPath
	}

	for seg := range strings.SplitSeq(prefix, "/") {
		if seg == "" {
			continue
		}

		it, err := s.store.Lookup(ctx, path, seg)
		if err != nil || !it.Type.IsContainer() {
			return nil
		}

		path = it.ChildPath()
	}

	items, err := s.store.Children(ctx, path)
	if err != nil {
		return nil
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}

	return names
}

// computeMatches ranks the candidates for the word at the cursor.
// An empty word lists every candidate after a slash, and nothing elsewhere
// so the hint line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, ws, we := wordBounds(input, m.input.Position())

	candidates := m.session.candidates(m.ctxFunc(), input, ws)
	if len(candidates) == 0 {
		return nil, ws, we
	}

	if word == "" {
		if ws == 0 || input[ws-1] != '/' {
			return nil, ws, we
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, ws, we
	}

	return fuzzy.Find(word, candidates), ws, we
}

// renderCandidateBar renders the matches on one line, ellipsized to width.
func renderCandidateBar(matches fuzzy.Matches, selected int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && i < len(matches)-1 && used+w+reserve > width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
