package barcode

// Stream is a forward only cursor over a barcode payload.
type Stream struct {
	s   string
	pos int
}

// NewStream returns a stream positioned at the start of s.
func NewStream(s string) *Stream {
	return &Stream{s: s}
}

// EOF reports whether every character has been consumed.
func (st *Stream) EOF() bool { return st.pos >= len(st.s) }

// Pos returns the index of the next character.
func (st *Stream) Pos() int { return st.pos }

// Remaining returns the unread part of the payload.
func (st *Stream) Remaining() string { return st.s[st.pos:] }

// Peek returns the next character without consuming it.
func (st *Stream) Peek() (byte, bool) {
	if st.EOF() {
		return 0, false
	}
	return st.s[st.pos], true
}

// Next consumes one character.
func (st *Stream) Next() (byte, bool) {
	c, ok := st.Peek()
	if ok {
		st.pos++
	}
	return c, ok
}

// ReadN consumes up to n characters.
func (st *Stream) ReadN(n int) string {
	end := st.pos + n
	if end > len(st.s) {
		end = len(st.s)
	}
	out := st.s[st.pos:end]
	st.pos = end
	return out
}

// ReadUntil consumes characters until stop matches or max characters were
// read. The stop character itself is left in the stream. max <= 0 means no
// limit.
func (st *Stream) ReadUntil(stop func(byte) bool, max int) string {
	start := st.pos
	for st.pos < len(st.s) {
		if max > 0 && st.pos-start >= max {
			break
		}
		if stop != nil && stop(st.s[st.pos]) {
			break
		}
		st.pos++
	}
	return st.s[start:st.pos]
}

// Skip consumes the next character when it equals c.
func (st *Stream) Skip(c byte) bool {
	if next, ok := st.Peek(); ok && next == c {
		st.pos++
		return true
	}
	return false
}
