package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Cursor — позиция чтения внутри буфера.
type Cursor struct {
	Src string
	Off int
}

// NewCursor creates a new cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{Src: src}
}

// EOF проверяет, достигнут ли конец буфера
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// PeekAt читает байт со смещением n от текущей позиции, иначе 0
func (c *Cursor) PeekAt(n int) byte {
	i := c.Off + n
	if i < 0 || i >= len(c.Src) {
		return 0
	}
	return c.Src[i]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatWhile consumes bytes while pred holds and returns how many were consumed.
func (c *Cursor) EatWhile(pred func(byte) bool) int {
	start := c.Off
	for !c.EOF() && pred(c.Src[c.Off]) {
		c.Off++
	}
	return c.Off - start
}

// EatRunesWhile consumes UTF-8 runes while pred holds and returns how many
// bytes were consumed.
func (c *Cursor) EatRunesWhile(pred func(rune) bool) int {
	start := c.Off
	for !c.EOF() {
		r, size := utf8.DecodeRuneInString(c.Src[c.Off:])
		if !pred(r) {
			break
		}
		c.Off += size
	}
	return c.Off - start
}

// Mark это метка, что бы быстро получать срез читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// From returns the text read since m.
func (c *Cursor) From(m Mark) string {
	return c.Src[int(m):c.Off]
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// IsNameRune reports whether r can appear in a function name: letters,
// digits and "_" of any script.
func IsNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
