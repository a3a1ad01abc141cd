package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Streams one token, then holds the connection open until the client goes
// away, like a slow upstream mid-generation.
func stallingStreamServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"hello\"}}]}\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
}

func TestStreamProducerExitsWhenConsumerCancels(t *testing.T) {
	srv := stallingStreamServer(t)
	defer srv.Close()

	provider := NewOpenAIProvider("test-key", srv.URL+"/v1")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := provider.Stream(ctx, "test-model", "hi")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	tok := <-stream
	if tok.Content != "hello" {
		t.Fatalf("first token = %+v, want content %q", tok, "hello")
	}

	// Abandon the channel the way a disconnected handler does, then cancel.
	// The producer must not sit blocked on a terminal send.
	cancel()
	time.Sleep(200 * time.Millisecond)

	select {
	case tok, ok := <-stream:
		if ok {
			t.Fatalf("producer still sending after cancellation: %+v", tok)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream channel never closed after cancellation")
	}
}
