package main

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdrkit/soapy/pkg/soapy"
)

// stallingWriter times out every write and cancels the context after the
// first attempt, like an operator interrupting a stuck device.
type stallingWriter struct {
	cancel context.CancelFunc
	calls  int
}

func (w *stallingWriter) Write(buffers [][]complex64, timeout time.Duration) (int, error) {
	w.calls++
	if w.calls == 1 {
		w.cancel()
	}
	return 0, &soapy.Error{Code: soapy.ErrTimeout, Message: "timeout"}
}

func TestPlayFileStopsOnCancelDuringTimeouts(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "samples.cf32")
	f, err := os.Create(fname)
	if err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(f, binary.LittleEndian, []complex64{1, 2}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &stallingWriter{cancel: cancel}
	stats := &streamStats{}
	buf := make([]complex64, 4)
	raw := make([]byte, len(buf)*8)

	done := make(chan error, 1)
	go func() {
		done <- playFile(ctx, w, fname, buf, raw, stats)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("playFile returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("playFile did not return after cancellation")
	}

	if got := stats.snapshot()["timeouts"]; got == 0 {
		t.Error("timed-out write was not counted")
	}
}
