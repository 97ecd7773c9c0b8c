package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/julienschmidt/httprouter"
)

// streamStats counts stream events. All fields are touched with atomics so
// the HTTP handler can snapshot them while the stream loop runs.
type streamStats struct {
	samples    uint64
	overflows  uint64
	underflows uint64
	timeouts   uint64
}

func (s *streamStats) addSamples(n int) {
	atomic.AddUint64(&s.samples, uint64(n))
}

func (s *streamStats) overflow() {
	atomic.AddUint64(&s.overflows, 1)
}

func (s *streamStats) underflow() {
	atomic.AddUint64(&s.underflows, 1)
}

func (s *streamStats) timeout() {
	atomic.AddUint64(&s.timeouts, 1)
}

func (s *streamStats) snapshot() map[string]uint64 {
	return map[string]uint64{
		"samples":    atomic.LoadUint64(&s.samples),
		"overflows":  atomic.LoadUint64(&s.overflows),
		"underflows": atomic.LoadUint64(&s.underflows),
		"timeouts":   atomic.LoadUint64(&s.timeouts),
	}
}

// serve runs a JSON counters endpoint until ctx is canceled.
func (s *streamStats) serve(ctx context.Context, addr string) error {
	handler := httprouter.New()
	handler.GET("/stats", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.snapshot())
	})

	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
