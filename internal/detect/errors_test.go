package detect

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := newError(KindBlur, "variance %.1f too low", 42.5)

	want := "blur: variance 42.5 too low"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestIsKind(t *testing.T) {
	err := newError(KindNoFace, "nothing found")

	if !IsKind(err, KindNoFace) {
		t.Error("expected IsKind to match the error's kind")
	}
	if IsKind(err, KindBlur) {
		t.Error("expected IsKind to reject a different kind")
	}
	if IsKind(errors.New("plain"), KindNoFace) {
		t.Error("expected IsKind to reject plain errors")
	}
	if IsKind(nil, KindNoFace) {
		t.Error("expected IsKind to reject nil")
	}
}

func TestErrKind_Wrapped(t *testing.T) {
	inner := newError(KindLighting, "too dark")
	wrapped := fmt.Errorf("processing image: %w", inner)

	if kind := ErrKind(wrapped); kind != KindLighting {
		t.Errorf("expected kind %q through wrapping, got %q", KindLighting, kind)
	}
	if kind := ErrKind(errors.New("plain")); kind != "" {
		t.Errorf("expected empty kind for plain error, got %q", kind)
	}
}
