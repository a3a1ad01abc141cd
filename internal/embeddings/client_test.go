package embeddings

import (
	"reflect"
	"testing"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name string
		in   int
	}{
		{"shorter than target is zero padded", 384},
		{"native size passes through", Dimensions},
		{"longer than target is truncated", 1536},
		{"empty vector", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]float32, tt.in)
			for i := range in {
				in[i] = float32(i + 1)
			}

			out := project(in)
			if len(out) != Dimensions {
				t.Fatalf("project() length = %d, want %d", len(out), Dimensions)
			}

			kept := tt.in
			if kept > Dimensions {
				kept = Dimensions
			}
			for i := 0; i < kept; i++ {
				if out[i] != in[i] {
					t.Fatalf("project()[%d] = %v, want %v", i, out[i], in[i])
				}
			}
			for i := kept; i < Dimensions; i++ {
				if out[i] != 0 {
					t.Fatalf("project()[%d] = %v, want zero padding", i, out[i])
				}
			}
		})
	}
}

func TestProjectDeterministic(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	if !reflect.DeepEqual(project(in), project(in)) {
		t.Error("project() is not deterministic")
	}
}

func TestClientLazyInit(t *testing.T) {
	c := NewClient("key", "http://localhost:1", "test-model")
	first := c.client()
	second := c.client()
	if first != second {
		t.Error("client() built the underlying API client more than once")
	}
}
