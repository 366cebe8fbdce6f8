package types

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrParse, "parse failed").
		WithCause(root).
		WithPath("/tmp/data.jsonl")

	if GetErrorCode(err) != ErrParse {
		t.Fatalf("expected code %s, got %s", ErrParse, GetErrorCode(err))
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is unwrap to root")
	}
	if got := err.Error(); got != "[PARSE_ERROR] parse failed: /tmp/data.jsonl: root" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestIsErrorCode_NestedCodes(t *testing.T) {
	t.Parallel()

	inner := NewFilesystemError("/a/b.json", fs.ErrNotExist)
	outer := fmt.Errorf("loading dir: %w", NewError(ErrShapeMismatch, "mixed").WithCause(inner))

	if !IsErrorCode(outer, ErrShapeMismatch) {
		t.Fatalf("expected outer code to match")
	}
	if !IsErrorCode(outer, ErrFilesystem) {
		t.Fatalf("expected nested code to match")
	}
	if IsErrorCode(outer, ErrParse) {
		t.Fatalf("unexpected match for PARSE_ERROR")
	}
	if !errors.Is(outer, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain")
	}
	if GetErrorCode(errors.New("plain")) != "" {
		t.Fatalf("plain error should carry no code")
	}
}

func TestNewUnknownFormatError_NamesPath(t *testing.T) {
	t.Parallel()

	err := NewUnknownFormatError("notes.txt")
	if err.Path != "notes.txt" || err.Code != ErrUnknownFormat {
		t.Fatalf("unexpected error %#v", err)
	}
}
