package tabular

import (
	"io"
	"unicode/utf8"
)

// bomSkippingReader wraps an io.Reader and skips a leading UTF-8 BOM
// (0xEF 0xBB 0xBF), commonly added by Windows spreadsheet exports.
type bomSkippingReader struct {
	reader  io.Reader
	checked bool
	pending []byte
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{reader: r}
}

func (r *bomSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true

		var buf [3]byte
		n, err := io.ReadFull(r.reader, buf[:])
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if n > 0 {
			if n == 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
				// BOM found, drop it
			} else {
				r.pending = append(r.pending, buf[:n]...)
			}
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
	}

	if len(r.pending) > 0 {
		n := copy(p, r.pending)
		r.pending = r.pending[n:]
		return n, nil
	}

	return r.reader.Read(p)
}

// utf8SanitizingReader replaces invalid UTF-8 bytes with '?' on the fly, so
// one corrupted export cannot poison downstream parsing. Multi-byte sequences
// split across Read calls are buffered until complete.
type utf8SanitizingReader struct {
	reader  io.Reader
	pending []byte
	done    bool
}

func newUTF8SanitizingReader(r io.Reader) *utf8SanitizingReader {
	return &utf8SanitizingReader{reader: r}
}

func (s *utf8SanitizingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := copy(p, s.pending)
	s.pending = s.pending[:0]

	var n int
	var err error
	if !s.done {
		n, err = s.reader.Read(p[offset:])
		if err == io.EOF {
			s.done = true
		}
	} else if offset == 0 {
		return 0, io.EOF
	}
	n += offset

	if n == 0 {
		return 0, err
	}

	if allASCII(p[:n]) {
		return n, err
	}

	return s.scrub(p[:n], s.done), err
}

// scrub rewrites data in place, replacing invalid bytes with '?'. When not at
// EOF, a trailing incomplete sequence is moved to pending instead of being
// judged invalid.
func (s *utf8SanitizingReader) scrub(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size <= 1 {
			if !atEOF && incompleteAtEnd(data[read:]) {
				s.pending = append(s.pending, data[read:]...)
				return write
			}
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// incompleteAtEnd reports whether data is the start of a multi-byte sequence
// that extends past the end of the buffer.
func incompleteAtEnd(data []byte) bool {
	if len(data) == 0 || len(data) >= utf8.UTFMax {
		return false
	}
	b := data[0]
	var want int
	switch {
	case b < 0xC0:
		return false
	case b < 0xE0:
		want = 2
	case b < 0xF0:
		want = 3
	default:
		want = 4
	}
	return len(data) < want
}

// sanitizedReader stacks the BOM skip and UTF-8 scrub in the order delimited
// parsing needs them.
func sanitizedReader(r io.Reader) io.Reader {
	return newUTF8SanitizingReader(newBOMSkippingReader(r))
}
