package lexflow

// limiter restricts matching to tokens whose pattern starts with one of a set
// of prefixes. An empty limiter admits every token.
type limiter struct {
	prefixes [][]rune
	// affectsNextTrailing keeps the restriction in place past the next
	// boundary. When false the limiter releases itself as soon as the next
	// token commits.
	affectsNextTrailing bool
}

func (l *limiter) set(prefixes []string) {
	l.prefixes = l.prefixes[:0]
	for _, p := range prefixes {
		l.prefixes = append(l.prefixes, []rune(p))
	}
}

func (l *limiter) clear() {
	l.prefixes = l.prefixes[:0]
}

func (l *limiter) active() bool {
	return len(l.prefixes) > 0
}

func (l *limiter) admits(pattern []rune) bool {
	if len(l.prefixes) == 0 {
		return true
	}
	for _, p := range l.prefixes {
		if hasRunePrefix(pattern, p) {
			return true
		}
	}
	return false
}

// release clears a self-releasing limiter. It reports whether the limiter
// changed.
func (l *limiter) release() bool {
	if l.affectsNextTrailing {
		return false
	}
	l.affectsNextTrailing = true
	if !l.active() {
		return false
	}
	l.clear()
	return true
}

func (l *limiter) snapshot() []string {
	out := make([]string, len(l.prefixes))
	for i, p := range l.prefixes {
		out[i] = string(p)
	}
	return out
}
