package edit

import (
	"cmp"
	"unicode"
)

// Slider heuristics modelled after git's xdiff (xdl_change_compact and the indent heuristic).

const (
	maxSlide  = 100 // upper bound for moving a group
	maxBlanks = 20  // blank lines counted around a split
	maxIndent = 200 // indentation is clamped to this
)

// content returns the line an edit carries.
func content(e Edit[string]) string {
	if e.Op == Insert {
		return e.Y
	}
	return e.X
}

// slide moves every group of consecutive deletions and insertions as far as it can while keeping
// the script valid, then settles on the position with the best indentation score.
func slide(edits []Edit[string]) []Edit[string] {
	end := 0
	for {
		start := nextChange(edits, end)
		if start == len(edits) {
			return edits
		}
		end = nextMatch(edits, start)

		var low int
		start, end, low = extent(edits, start, end)
		if end == low {
			continue
		}

		// The group sits at its lowest position; only positions above need scoring.
		size := end - start
		best, bestScore := -1, score{}
		for split := max(low, end-size-1, end-maxSlide); split <= end; split++ {
			var s score
			s.add(measureAt(edits, split))
			s.add(measureAt(edits, split-size))
			if best == -1 || s.beats(bestScore) {
				best, bestScore = split, s
			}
		}
		for ; end > best; start, end = start-1, end-1 {
			edits[start-1], edits[end-1] = edits[end-1], edits[start-1]
		}
	}
}

func nextChange(edits []Edit[string], i int) int {
	for i < len(edits) && edits[i].Op == Match {
		i++
	}
	return i
}

func nextMatch(edits []Edit[string], i int) int {
	for i < len(edits) && edits[i].Op != Match {
		i++
	}
	return i
}

// extent slides the group edits[start:end] up and down, absorbing neighbouring groups, until its
// size stops changing. It returns the group at its lowest position and the lowest end the group
// can have.
func extent(edits []Edit[string], start, end int) (newStart, newEnd, low int) {
	for {
		size := end - start

		for start > 0 && content(edits[start-1]) == content(edits[end-1]) {
			edits[start-1], edits[end-1] = edits[end-1], edits[start-1]
			start, end = start-1, end-1
			for start > 0 && edits[start-1].Op != Match {
				start--
			}
		}
		low = end

		for end < len(edits) && content(edits[start]) == content(edits[end]) {
			edits[start], edits[end] = edits[end], edits[start]
			start, end = start+1, end+1
			for end < len(edits) && edits[end].Op != Match {
				end++
			}
		}

		if end-start == size {
			return start, end, low
		}
	}
}

// measure describes the surroundings of a split between two lines.
type measure struct {
	eof        bool // split is after the last line
	indent     int  // indent of the line after the split, -1 if blank
	preBlank   int  // blank lines before the split
	preIndent  int  // indent of the first non-blank line before, -1 if none
	postBlank  int  // blank lines after the line after the split
	postIndent int  // indent of the first non-blank line after that, -1 if none
}

func measureAt(edits []Edit[string], split int) measure {
	m := measure{indent: -1, preIndent: -1, postIndent: -1}
	if split >= len(edits) {
		m.eof = true
	} else {
		m.indent = indentOf(content(edits[split]))
	}

	for i := split - 1; i >= 0; i-- {
		if m.preIndent = indentOf(content(edits[i])); m.preIndent != -1 {
			break
		}
		if m.preBlank++; m.preBlank == maxBlanks {
			m.preIndent = 0
			break
		}
	}

	for i := split + 1; i < len(edits); i++ {
		if m.postIndent = indentOf(content(edits[i])); m.postIndent != -1 {
			break
		}
		if m.postBlank++; m.postBlank == maxBlanks {
			m.postIndent = 0
			break
		}
	}
	return m
}

// indentOf returns the width of the leading whitespace of s with tab stops every 8 columns, or -1
// for a blank line.
func indentOf(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == ' ':
			n++
		case r == '\t':
			n += 8 - n%8
		case unicode.IsSpace(r):
		default:
			return n
		}
		if n >= maxIndent {
			return maxIndent
		}
	}
	return -1
}

// Weights taken over from xdiff. Lower scores are better.
const (
	startOfFilePenalty              = 1
	endOfFilePenalty                = 21
	totalBlankWeight                = -30
	postBlankWeight                 = 6
	relativeIndentPenalty           = -4
	relativeIndentWithBlankPenalty  = 10
	relativeOutdentPenalty          = 24
	relativeOutdentWithBlankPenalty = 17
	relativeDentPenalty             = 23
	relativeDentWithBlankPenalty    = 17

	// Only the sign of the indent difference of two scores counts, scaled by this.
	indentWeight = 60
)

type score struct {
	effectiveIndent int
	penalty         int
}

func (s *score) add(m measure) {
	if m.preIndent == -1 && m.preBlank == 0 {
		s.penalty += startOfFilePenalty
	}
	if m.eof {
		s.penalty += endOfFilePenalty
	}

	postBlank := 0
	if m.indent == -1 {
		postBlank = 1 + m.postBlank
	}
	totalBlank := m.preBlank + postBlank
	s.penalty += totalBlankWeight*totalBlank + postBlankWeight*postBlank

	indent := m.indent
	if indent == -1 {
		indent = m.postIndent
	}
	s.effectiveIndent += indent

	if indent == -1 || m.preIndent == -1 || indent == m.preIndent {
		return
	}
	blank := totalBlank != 0
	switch {
	case indent > m.preIndent:
		s.penalty += pick(blank, relativeIndentWithBlankPenalty, relativeIndentPenalty)
	case m.postIndent != -1 && m.postIndent > indent:
		// Outdented and followed by deeper lines: probably opens a new block, like "else".
		s.penalty += pick(blank, relativeOutdentWithBlankPenalty, relativeOutdentPenalty)
	default:
		// Outdented otherwise: probably closes the previous block.
		s.penalty += pick(blank, relativeDentWithBlankPenalty, relativeDentPenalty)
	}
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}

func (s *score) beats(t score) bool {
	return indentWeight*cmp.Compare(s.effectiveIndent, t.effectiveIndent)+s.penalty-t.penalty <= 0
}
