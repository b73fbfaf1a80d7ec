package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"
)

func TestOpenAIProvider_Chat(t *testing.T) {
	var got chatCompletionReq
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Namaste!"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL+"/v1", "sk-test", "")
	reply, err := p.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "Namaste!" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if got.Model != "gpt-4o-mini" || len(got.Messages) != 2 || got.Messages[0].Role != RoleSystem {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
		},
		"api error": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
		},
		"no choices": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := NewOpenAIProvider(srv.URL, "k", "m").Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestOpenAIProvider_MissingKey(t *testing.T) {
	_, err := NewOpenAIProvider("http://127.0.0.1:1", "", "").Chat(context.Background(), nil)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestOpenRouterProvider_Headers(t *testing.T) {
	var referer, title string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "k", "", "https://shop.example", "Goldsmith")
	if _, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if referer != "https://shop.example" || title != "Goldsmith" {
		t.Fatalf("unexpected headers referer=%q title=%q", referer, title)
	}
}

func TestOllamaProvider_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatReq
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			t.Errorf("stream must be false")
		}
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"hello"},"done":true}`))
	}))
	defer srv.Close()

	reply, err := NewOllamaProvider(srv.URL, "").Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
	if err != nil || reply != "hello" {
		t.Fatalf("reply=%q err=%v", reply, err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewDefaultRegistry(Settings{})

	if _, err := reg.Get(context.Background(), "nope", ""); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
	p, err := reg.Get(context.Background(), " OpenAI ", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("get openai: %v", err)
	}
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Fatalf("unexpected provider type %T", p)
	}
	if _, err := reg.Get(context.Background(), "gemini", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials for gemini, got %v", err)
	}

	want := []string{"gemini", "ollama", "openai", "openrouter"}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("names=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names=%v", got)
		}
	}
}

func TestToGenAI(t *testing.T) {
	contents, system := toGenAI([]Message{
		{Role: RoleSystem, Content: "prices"},
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
	})
	if system != "prices" {
		t.Fatalf("system=%q", system)
	}
	if len(contents) != 3 {
		t.Fatalf("contents=%d", len(contents))
	}
	if contents[1].Role != string(genai.RoleModel) || contents[2].Role != string(genai.RoleUser) {
		t.Fatalf("roles %q %q", contents[1].Role, contents[2].Role)
	}
}
