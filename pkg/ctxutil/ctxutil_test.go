package ctxutil

import (
	"context"
	"testing"
)

func TestUserID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithUserID(context.Background(), "firebase-uid-123")

	uid, ok := UserIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected uid to be present")
	}
	if uid != "firebase-uid-123" {
		t.Errorf("uid = %q", uid)
	}
}

func TestUserID_Missing(t *testing.T) {
	t.Parallel()

	if _, ok := UserIDFromCtx(context.Background()); ok {
		t.Error("empty context should have no uid")
	}

	if _, ok := UserIDFromCtx(WithUserID(context.Background(), "")); ok {
		t.Error("empty uid should report absent")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestIDFromCtx(ctx); got != "req-42" {
		t.Errorf("request id = %q", got)
	}

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("missing request id = %q, want empty", got)
	}
}
