package chat

import "strings"

// wordSmoother re-chunks the token stream at whitespace boundaries so a
// partial word is never flushed to the client. Trailing text with no boundary
// stays buffered until Flush.
type wordSmoother struct {
	emit func(text string) error
	buf  strings.Builder
}

func newWordSmoother(emit func(text string) error) *wordSmoother {
	return &wordSmoother{emit: emit}
}

func (s *wordSmoother) Write(text string) error {
	s.buf.WriteString(text)

	buffered := s.buf.String()
	idx := strings.LastIndexAny(buffered, " \t\n")
	if idx < 0 {
		return nil
	}

	flush := buffered[:idx+1]
	rest := buffered[idx+1:]
	s.buf.Reset()
	s.buf.WriteString(rest)

	return s.emit(flush)
}

func (s *wordSmoother) Flush() error {
	if s.buf.Len() == 0 {
		return nil
	}
	text := s.buf.String()
	s.buf.Reset()
	return s.emit(text)
}
