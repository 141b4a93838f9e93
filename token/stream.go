package token

// Stream is a seekable cursor over a fixed token sequence. It has a single
// owner; parse rules move the cursor and the backtracking combinators save
// and restore it with Index and SetIndex.
type Stream struct {
	tokens []Token
	index  int
}

// NewStream copies tokens, so later changes to the caller's slice are not
// visible through the stream.
func NewStream(tokens []Token) *Stream {
	owned := make([]Token, len(tokens))
	copy(owned, tokens)
	return &Stream{tokens: owned}
}

// Peek returns the current token without advancing.
func (s *Stream) Peek() (Token, bool) {
	if s.index >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[s.index], true
}

// Advance returns the current token and moves past it. At the end of the
// stream it returns false and leaves the cursor where it is.
func (s *Stream) Advance() (Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.index++
	}
	return tok, ok
}

func (s *Stream) Index() int {
	return s.index
}

// SetIndex overwrites the cursor. Restoring a value obtained from Index is
// always valid; anything else is the caller's responsibility.
func (s *Stream) SetIndex(i int) {
	s.index = i
}

func (s *Stream) Len() int {
	return len(s.tokens)
}

func (s *Stream) AtEnd() bool {
	return s.index >= len(s.tokens)
}

// Remaining returns the tokens that have not been consumed yet.
func (s *Stream) Remaining() []Token {
	if s.AtEnd() {
		return nil
	}
	return s.tokens[s.index:]
}
