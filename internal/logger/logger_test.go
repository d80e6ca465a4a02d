package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndRestore(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))
	defer Set(nil)

	L().Info("hello", zap.Int("n", 1))
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}

	Set(nil)
	L().Info("dropped")
	if logs.Len() != 1 {
		t.Fatalf("nop logger must drop entries, got %d", logs.Len())
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if FromContext(context.Background()) != L() {
		t.Fatal("expected package logger when context carries none")
	}
	l := zap.NewExample()
	ctx := NewContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatal("expected context logger")
	}
}
