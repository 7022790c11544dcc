// stdio_test.go - Tests for stdio framing.
package bridge

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
)

const testMaxBodySize = 10 * 1024 * 1024

func frameMessage(payload string) string {
	return fmt.Sprintf("Content-Length: %d\r\nContent-Type: application/json\r\n\r\n%s", len(payload), payload)
}

func TestReadStdioMessage_LineDelimitedJSON(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}` + "\n"
	r := bufio.NewReader(strings.NewReader(input))

	msg, err := ReadStdioMessage(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("ReadStdioMessage returned error: %v", err)
	}
	if got, want := string(msg), `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestReadStdioMessage_ContentLengthFramedJSON(t *testing.T) {
	payload := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`
	r := bufio.NewReader(strings.NewReader(frameMessage(payload)))

	msg, err := ReadStdioMessage(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("ReadStdioMessage returned error: %v", err)
	}
	if got := string(msg); got != payload {
		t.Fatalf("message = %q, want %q", got, payload)
	}
}

func TestReadStdioMessage_BackToBackFramedMessages(t *testing.T) {
	first := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	second := `{"jsonrpc":"2.0","id":2,"method":"tools/list","params":{}}`
	input := frameMessage(first) + frameMessage(second)
	r := bufio.NewReader(strings.NewReader(input))

	msg1, err := ReadStdioMessage(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("ReadStdioMessage first returned error: %v", err)
	}
	if got := string(msg1); got != first {
		t.Fatalf("first message = %q, want %q", got, first)
	}

	msg2, err := ReadStdioMessage(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("ReadStdioMessage second returned error: %v", err)
	}
	if got := string(msg2); got != second {
		t.Fatalf("second message = %q, want %q", got, second)
	}

	_, err = ReadStdioMessage(r, testMaxBodySize)
	if err == nil {
		t.Fatal("expected EOF after reading all messages, got nil")
	}
	if err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReadStdioMessage_SkipsBlankLines(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\n\r\n  \n{\"id\":1}\n"))

	msg, framing, err := ReadStdioMessageWithMode(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(msg) != `{"id":1}` || framing != FramingLine {
		t.Fatalf("got %q (%s), want {\"id\":1} (line)", msg, framing)
	}
}

func TestReadStdioMessage_FinalLineWithoutNewline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(`{"id":7}`))

	msg, err := ReadStdioMessage(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(msg) != `{"id":7}` {
		t.Fatalf("message = %q", msg)
	}
	if _, err := ReadStdioMessage(r, testMaxBodySize); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReadStdioMessage_ReportsFraming(t *testing.T) {
	payload := `{"jsonrpc":"2.0","id":3,"method":"ping"}`
	r := bufio.NewReader(strings.NewReader(frameMessage(payload) + payload + "\n"))

	_, first, err := ReadStdioMessageWithMode(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, second, err := ReadStdioMessageWithMode(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != FramingContentLength || second != FramingLine {
		t.Fatalf("framings = %s, %s; want content-length, line", first, second)
	}
}

func TestReadStdioMessage_OversizedContentLength(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"ping","padding":"xxxxxxxxxx"}`
	next := `{"jsonrpc":"2.0","id":2,"method":"ping"}`
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%sContent-Length: %d\r\n\r\n%s", len(body), body, len(next), next)
	r := bufio.NewReader(strings.NewReader(input))

	msg, framing, err := ReadStdioMessageWithMode(r, 50)
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("expected ErrMessageTooLarge, got %q, %v", msg, err)
	}
	if framing != FramingContentLength {
		t.Fatalf("framing = %s, want content-length", framing)
	}

	msg, framing, err = ReadStdioMessageWithMode(r, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(msg) != next || framing != FramingContentLength {
		t.Fatalf("got %q (%s); the oversized body must be skipped", msg, framing)
	}
}

func TestReadStdioMessage_OversizedLine(t *testing.T) {
	long := `{"jsonrpc":"2.0","id":1,"method":"ping","padding":"` + strings.Repeat("x", 8192) + `"}`
	r := bufio.NewReaderSize(strings.NewReader(long+"\n{\"id\":2}\n"), 16)

	if _, err := ReadStdioMessage(r, 100); !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("expected ErrMessageTooLarge, got %v", err)
	}
	msg, err := ReadStdioMessage(r, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(msg) != `{"id":2}` {
		t.Fatalf("got %q, want the message after the oversized line", msg)
	}
	if _, err := ReadStdioMessage(r, 100); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReadStdioMessage_OversizedContentLengthTruncated(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Content-Length: 999\r\n\r\n{}"))

	if _, err := ReadStdioMessage(r, 10); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadStdioMessage_NonNumericContentLength(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Content-Length: abc\r\n"))

	msg, framing, err := ReadStdioMessageWithMode(r, testMaxBodySize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if framing != FramingLine || string(msg) != "Content-Length: abc" {
		t.Fatalf("got %q (%s); unusable header should come back as a line", msg, framing)
	}
}

func TestReadStdioMessage_TruncatedBody(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Content-Length: 50\r\n\r\n{\"id\":1}"))

	if _, err := ReadStdioMessage(r, testMaxBodySize); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestWriter_Framing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteMessage([]byte(`{"id":1}`), FramingLine); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteMessage([]byte(`{"id":2}`), FramingContentLength); err != nil {
		t.Fatal(err)
	}

	want := "{\"id\":1}\nContent-Length: 8\r\n\r\n{\"id\":2}"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	// Round trip through the reader.
	r := bufio.NewReader(strings.NewReader(buf.String()))
	for _, want := range []string{`{"id":1}`, `{"id":2}`} {
		msg, err := ReadStdioMessage(r, testMaxBodySize)
		if err != nil || string(msg) != want {
			t.Fatalf("read %q, %v; want %q", msg, err, want)
		}
	}
}

func TestWriter_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = w.WriteMessage([]byte(fmt.Sprintf(`{"id":%d,"pad":"%s"}`, i, strings.Repeat("x", 512))), FramingLine)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d lines, want 50", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, `{"id":`) || !strings.HasSuffix(line, `"}`) {
			t.Fatalf("interleaved line: %q", line)
		}
	}
}
