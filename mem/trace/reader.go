package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Reader reads entries from a trace one line at a time.
type Reader struct {
	name      string
	scanner   *bufio.Scanner
	closer    io.Closer
	line      int
	bytesRead uint64
	size      uint64
}

// MaxLineLength is the longest trace line, in bytes, that a Reader accepts.
const MaxLineLength = 1 << 20

// NewReader creates a reader that reads a trace from r. The name is used in
// error messages.
func NewReader(name string, r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	return &Reader{
		name:    name,
		scanner: scanner,
	}
}

// Open opens a trace file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &ResourceError{Path: path, Err: err}
	}

	if info.IsDir() {
		f.Close()
		return nil, &ResourceError{Path: path, Err: errIsDirectory}
	}

	r := NewReader(path, f)
	r.closer = f
	r.size = uint64(info.Size())

	return r, nil
}

var errIsDirectory = errors.New("is a directory")

// Name returns the name of the trace.
func (r *Reader) Name() string {
	return r.name
}

// Size returns the size of the trace file in bytes, or 0 if unknown.
func (r *Reader) Size() uint64 {
	return r.size
}

// BytesRead returns the number of bytes consumed so far.
func (r *Reader) BytesRead() uint64 {
	return r.bytesRead
}

// Next returns the next entry. Blank lines are skipped. It returns io.EOF
// after the last entry.
func (r *Reader) Next() (Entry, error) {
	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()
		r.bytesRead += uint64(len(text)) + 1

		if strings.TrimSpace(text) == "" {
			continue
		}

		entry, err := ParseLine(text)
		if err != nil {
			err.(*FormatError).Line = r.line
			return Entry{}, err
		}

		entry.Line = r.line

		return entry, nil
	}

	err := r.scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return Entry{}, &FormatError{
			Line:   r.line + 1,
			Reason: fmt.Sprintf("line longer than %d bytes", MaxLineLength),
		}
	}

	if err != nil {
		return Entry{}, &ResourceError{Path: r.name, Err: err}
	}

	return Entry{}, io.EOF
}

// Close closes the underlying file if the reader opened it.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// ParseLine parses a line such as " L 7ff000123,4". The returned entry has no
// line number.
func ParseLine(text string) (Entry, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 || len(fields) > 3 {
		return Entry{}, &FormatError{
			Text:   text,
			Reason: "expected an operation and an address,size pair",
		}
	}

	op, ok := ParseOp(fields[0])
	if !ok {
		return Entry{}, &FormatError{
			Text:   text,
			Reason: "unknown operation " + strconv.Quote(fields[0]),
		}
	}

	addrText, sizeText, found := strings.Cut(strings.Join(fields[1:], ""), ",")
	if !found {
		return Entry{}, &FormatError{Text: text, Reason: "missing size"}
	}

	addr, err := strconv.ParseUint(trimHexPrefix(addrText), 16, 64)
	if err != nil {
		return Entry{}, &FormatError{
			Text:   text,
			Reason: "invalid address " + strconv.Quote(addrText),
		}
	}

	size, err := strconv.Atoi(sizeText)
	if err != nil || size < 0 {
		return Entry{}, &FormatError{
			Text:   text,
			Reason: "invalid size " + strconv.Quote(sizeText),
		}
	}

	entry := Entry{
		Op:      op,
		Address: addr,
		Size:    size,
	}

	return entry, nil
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}

	return s
}
