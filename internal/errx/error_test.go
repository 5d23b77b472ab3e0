package errx

import (
	"errors"
	"strings"
	"testing"
)

func TestIsComparesCodesOnly(t *testing.T) {
	e1 := ErrFormat.With("size", 64).WithCause(errors.New("short read"))
	e2 := ErrFormat.Withf("other message")
	if !errors.Is(e1, e2) {
		t.Fatalf("expected errors with the same code to match: %v vs %v", e1, e2)
	}
	if errors.Is(e1, ErrBounds) {
		t.Fatal("format error must not match bounds sentinel")
	}
}

func TestInputErrorsKeepCauseWithoutStack(t *testing.T) {
	cause := errors.New("bad float")
	err := ErrFormat.WithCause(cause)
	if err.Stack() != nil {
		t.Fatalf("input errors should not capture a stack, got %d frames", len(err.Stack()))
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause chain lost")
	}
}

func TestSysErrorCapturesStackOnce(t *testing.T) {
	inner := ErrIO.WithCause(errors.New("permission denied"))
	if len(inner.Stack()) == 0 {
		t.Fatal("expected IO error to capture a stack")
	}
	outer := ErrIO.Withf("save failed").WithCause(inner)
	if outer.Stack() != nil {
		t.Fatal("stack must not be captured twice along one chain")
	}
}

func TestWithDoesNotMutateSentinel(t *testing.T) {
	_ = ErrBounds.With("x", 10)
	if ErrBounds.Data() != nil {
		t.Fatalf("sentinel data mutated: %v", ErrBounds.Data())
	}
}

func TestErrorStringIncludesCodeAndData(t *testing.T) {
	err := ErrBounds.With("x", 3)
	msg := err.Error()
	if !strings.HasPrefix(msg, string(CodeBounds)) || !strings.Contains(msg, "x:3") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrInvalidConfig.Withf("bad pass"))
	if got := CodeOf(wrapped); got != CodeInvalidConfig {
		t.Fatalf("CodeOf = %q, want %q", got, CodeInvalidConfig)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Fatalf("CodeOf(plain) = %q, want empty", got)
	}
}
