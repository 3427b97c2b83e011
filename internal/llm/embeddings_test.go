package llm

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

// embeddingsHandler serves vecs in the OpenAI embeddings response format.
func embeddingsHandler(t *testing.T, vecs [][]float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("expected /v1/embeddings, got %s", r.URL.Path)
		}

		data := make([]map[string]any, len(vecs))
		for i, v := range vecs {
			data[i] = map[string]any{"object": "embedding", "index": i, "embedding": v}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  "test-model",
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}
}

func TestNewEmbeddingsClient(t *testing.T) {
	client, err := NewEmbeddingsClient("http://localhost:8081", "", "test-model", 768)
	if err != nil {
		t.Fatalf("NewEmbeddingsClient() error = %v", err)
	}
	if client.BaseURL != "http://localhost:8081/v1" {
		t.Errorf("NewEmbeddingsClient() BaseURL = %v, want http://localhost:8081/v1", client.BaseURL)
	}
	if client.ExpectedSize != 768 {
		t.Errorf("NewEmbeddingsClient() ExpectedSize = %v, want 768", client.ExpectedSize)
	}

	if _, err := NewEmbeddingsClient("http://localhost:8081", "", "test-model", 0); err == nil {
		t.Error("NewEmbeddingsClient() expected error for zero vector size")
	}
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	tests := []struct {
		name         string
		texts        []string
		expectedSize int
		serverResp   http.HandlerFunc
		wantErr      bool
		wantCount    int
	}{
		{
			name:         "successful embedding",
			texts:        []string{"Hello", "World"},
			expectedSize: 4,
			serverResp:   embeddingsHandler(t, [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}}),
			wantCount:    2,
		},
		{
			name:         "empty input",
			texts:        []string{},
			expectedSize: 4,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				t.Error("server should not be called for empty input")
			},
			wantErr: true,
		},
		{
			name:         "wrong embedding count",
			texts:        []string{"Hello", "World"},
			expectedSize: 4,
			serverResp:   embeddingsHandler(t, [][]float64{{1, 0, 0, 0}}),
			wantErr:      true,
		},
		{
			name:         "wrong vector size",
			texts:        []string{"Hello"},
			expectedSize: 4,
			serverResp:   embeddingsHandler(t, [][]float64{{1, 0}}),
			wantErr:      true,
		},
		{
			name:         "server error",
			texts:        []string{"Hello"},
			expectedSize: 4,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"message":"internal server error"}}`))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.serverResp)
			defer server.Close()

			client, err := NewEmbeddingsClient(server.URL, "test-key", "test-model", tt.expectedSize)
			if err != nil {
				t.Fatalf("NewEmbeddingsClient() error = %v", err)
			}
			embeddings, err := client.EmbedTexts(context.Background(), tt.texts)

			if tt.wantErr {
				if err == nil {
					t.Errorf("EmbedTexts() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("EmbedTexts() unexpected error: %v", err)
				return
			}

			if len(embeddings) != tt.wantCount {
				t.Errorf("EmbedTexts() returned %d embeddings, want %d", len(embeddings), tt.wantCount)
			}

			for i, emb := range embeddings {
				if len(emb) != tt.expectedSize {
					t.Errorf("EmbedTexts() embedding[%d] size = %d, want %d", i, len(emb), tt.expectedSize)
				}
			}
		})
	}
}

func TestEmbeddingsClient_EmbedText_Normalizes(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float64{{3, 4, 0}}))
	defer server.Close()

	client, err := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)
	if err != nil {
		t.Fatalf("NewEmbeddingsClient() error = %v", err)
	}
	emb, err := client.EmbedText(context.Background(), "test")
	if err != nil {
		t.Fatalf("EmbedText() error = %v", err)
	}

	want := []float64{0.6, 0.8, 0}
	for i, w := range want {
		if math.Abs(float64(emb[i])-w) > 1e-6 {
			t.Errorf("EmbedText() embedding[%d] = %v, want %v", i, emb[i], w)
		}
	}
}

func TestEmbeddingsClient_EmbedText_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float64{}))
	defer server.Close()

	client, err := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)
	if err != nil {
		t.Fatalf("NewEmbeddingsClient() error = %v", err)
	}
	emb, err := client.EmbedText(context.Background(), "test")
	if err == nil {
		t.Fatalf("EmbedText() = %v, want error", emb)
	}
	if emb != nil {
		t.Errorf("EmbedText() embedding = %v, want nil", emb)
	}
}
