package lexflow

// segments is the leading/trailing double buffer. The active buffer collects
// text as it is scanned; the other one holds the leading text of the queued
// token. Rotating swaps the roles without copying.
type segments struct {
	bufs   [2][]rune
	active int

	bufArr [2][256]rune
}

func (s *segments) reset() {
	s.bufs[0] = s.bufArr[0][:0]
	s.bufs[1] = s.bufArr[1][:0]
	s.active = 0
}

func (s *segments) appendRune(r rune) {
	s.bufs[s.active] = append(s.bufs[s.active], r)
}

// mark returns the current length of the active buffer.
func (s *segments) mark() int {
	return len(s.bufs[s.active])
}

// truncate drops everything in the active buffer past n. Pattern runes are
// appended while a match is in progress and removed this way once it commits.
func (s *segments) truncate(n int) {
	if n < len(s.bufs[s.active]) {
		s.bufs[s.active] = s.bufs[s.active][:n]
	}
}

func (s *segments) current() []rune {
	return s.bufs[s.active]
}

func (s *segments) lead() []rune {
	return s.bufs[1-s.active]
}

// rotate turns the active buffer into the lead buffer and starts a fresh
// active buffer in the other slot.
func (s *segments) rotate() {
	s.active = 1 - s.active
	s.bufs[s.active] = s.bufs[s.active][:0]
}

// release drops buffers that outgrew the inline arrays so pooled sessions do
// not pin large allocations.
func (s *segments) release() {
	for i := range s.bufs {
		if cap(s.bufs[i]) > len(s.bufArr[i]) {
			s.bufs[i] = nil
		}
	}
}
