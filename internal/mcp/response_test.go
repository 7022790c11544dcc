package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJSON_PreservesKeyOrder(t *testing.T) {
	t.Parallel()

	got, err := PrettyJSON(json.RawMessage(`{"key":"greeting","id":"k42"}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"key\": \"greeting\",\n  \"id\": \"k42\"\n}", got)
}

func TestPrettyJSON_TrimsSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	got, err := PrettyJSON(json.RawMessage("  [1, 2]\n"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2\n]", got)
}

func TestPrettyJSON_EmptyIsNull(t *testing.T) {
	t.Parallel()

	got, err := PrettyJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", got)
}

func TestPrettyJSON_RejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := PrettyJSON(json.RawMessage(`{"unterminated"`))
	require.Error(t, err)
}

func TestJSONResult(t *testing.T) {
	t.Parallel()

	ok := JSONResult(json.RawMessage(`{"a":1}`))
	assert.False(t, ok.IsError)
	require.Len(t, ok.Content, 1)
	assert.Equal(t, "text", ok.Content[0].Type)
	assert.Equal(t, "{\n  \"a\": 1\n}", ok.Text())

	bad := JSONResult(json.RawMessage(`nope`))
	assert.True(t, bad.IsError)
	assert.Contains(t, bad.Text(), ErrMarshalFailed)
}

func TestMarshalResult_AlwaysEmitsIsError(t *testing.T) {
	t.Parallel()

	raw := MarshalResult(TextResult("hi"))
	assert.JSONEq(t, `{"content":[{"type":"text","text":"hi"}],"isError":false}`, string(raw))
}

func TestToolResultText_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", ToolResult{}.Text())
}
