// stdio.go - MCP stdio message framing: line-delimited JSON and Content-Length headers.
package bridge

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// StdioFraming records how a message arrived so the reply can use the same framing.
type StdioFraming int

const (
	FramingLine StdioFraming = iota
	FramingContentLength
)

func (f StdioFraming) String() string {
	if f == FramingContentLength {
		return "content-length"
	}
	return "line"
}

// ErrMessageTooLarge reports an inbound message over the size cap. The
// oversized bytes have already been consumed, so the next read starts at the
// following message.
var ErrMessageTooLarge = errors.New("stdio message exceeds size limit")

// ReadStdioMessage reads one MCP message from a buffered reader.
// maxBodySize caps both line length and the Content-Length value to prevent memory exhaustion.
func ReadStdioMessage(reader *bufio.Reader, maxBodySize int) ([]byte, error) {
	msg, _, err := ReadStdioMessageWithMode(reader, maxBodySize)
	return msg, err
}

// ReadStdioMessageWithMode is ReadStdioMessage that also reports the framing used.
// A Content-Length header whose value is not a number is returned as a line so
// the caller answers it with a parse error.
func ReadStdioMessageWithMode(reader *bufio.Reader, maxBodySize int) ([]byte, StdioFraming, error) {
	for {
		firstLineBytes, err := readLine(reader, maxBodySize)
		if err != nil {
			if errors.Is(err, io.EOF) {
				trimmed := bytes.TrimSpace(firstLineBytes)
				if len(trimmed) == 0 {
					return nil, FramingLine, io.EOF
				}
				return trimmed, FramingLine, nil
			}
			return nil, FramingLine, err
		}

		firstLine := bytes.TrimSpace(firstLineBytes)
		if len(firstLine) == 0 {
			continue
		}

		if !bytes.HasPrefix(bytes.ToLower(firstLine), []byte("content-length:")) {
			return firstLine, FramingLine, nil
		}

		_, value, _ := strings.Cut(string(firstLine), ":")
		contentLength, convErr := strconv.Atoi(strings.TrimSpace(value))
		if convErr != nil || contentLength < 0 {
			return firstLine, FramingLine, nil
		}

		if err := skipHeaders(reader, maxBodySize); err != nil {
			return nil, FramingContentLength, err
		}

		if contentLength > maxBodySize {
			if _, err := io.CopyN(io.Discard, reader, int64(contentLength)); err != nil {
				return nil, FramingContentLength, io.ErrUnexpectedEOF
			}
			return nil, FramingContentLength, ErrMessageTooLarge
		}

		payload := make([]byte, contentLength)
		if _, readErr := io.ReadFull(reader, payload); readErr != nil {
			return nil, FramingContentLength, readErr
		}
		return bytes.TrimSpace(payload), FramingContentLength, nil
	}
}

// skipHeaders consumes the remaining headers up to and including the blank line.
func skipHeaders(reader *bufio.Reader, limit int) error {
	for {
		headerLine, err := readLine(reader, limit)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		if len(bytes.TrimSpace(headerLine)) == 0 {
			return nil
		}
	}
}

// readLine is bufio.Reader.ReadBytes('\n') with a length cap. A line over the
// cap is drained through its newline and reported as ErrMessageTooLarge.
func readLine(reader *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := reader.ReadSlice('\n')
		if !tooLong {
			// +2 leaves room for a trailing "\r\n".
			if len(line)+len(chunk) > limit+2 {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if tooLong {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return nil, ErrMessageTooLarge
		}
		return line, err
	}
}

// Writer serializes framed writes to one output stream. Safe for concurrent use.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteMessage writes payload as one complete message; concurrent callers never interleave.
func (w *Writer) WriteMessage(payload []byte, framing StdioFraming) error {
	var buf bytes.Buffer
	switch framing {
	case FramingContentLength:
		fmt.Fprintf(&buf, "Content-Length: %d\r\n\r\n", len(payload))
		buf.Write(payload)
	default:
		buf.Write(payload)
		buf.WriteByte('\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.w.Write(buf.Bytes())
	return err
}
