package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kiwi570/bulle/internal/bulle/site"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Provider) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"})
	return srv, p
}

func completionBody(content string, tokens int) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{"total_tokens": tokens},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestChatParsesActions(t *testing.T) {
	var gotAuth string
	var gotReq map[string]any
	_, p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody(
			`{"message":"Fait !","actions":[{"type":"setTheme","themeId":"neon"}],"suggestions":["Le layout"]}`,
			321,
		)))
	})

	resp, err := p.Chat(context.Background(), Request{
		SessionID: "s1",
		Message:   "passe en mode cyberpunk",
		Site:      site.DefaultSite(),
		SectionID: "hero",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq["model"] != "test-model" {
		t.Errorf("model = %v", gotReq["model"])
	}
	if resp.Reply.Message != "Fait !" {
		t.Errorf("Message = %q", resp.Reply.Message)
	}
	if len(resp.Reply.Actions) != 1 || resp.Reply.Actions[0].ThemeID != "neon" {
		t.Errorf("Actions = %+v", resp.Reply.Actions)
	}
	if resp.TokensUsed != 321 {
		t.Errorf("TokensUsed = %d", resp.TokensUsed)
	}

	// The system message carries the section context.
	messages := gotReq["messages"].([]any)
	system := messages[0].(map[string]any)
	if !strings.Contains(system["content"].(string), "Section actuelle: hero") {
		t.Error("system prompt missing the section context")
	}
}

func TestChatDegradedReply(t *testing.T) {
	_, p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("Je ne peux pas t'aider avec ça.", 10)))
	})

	resp, err := p.Chat(context.Background(), Request{Message: "x", Site: site.DefaultSite()})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !resp.Reply.Degraded {
		t.Error("plain-text content should degrade")
	}
	if resp.Reply.Message != "Je ne peux pas t'aider avec ça." {
		t.Errorf("Message = %q", resp.Reply.Message)
	}
}

func TestChatRateLimit(t *testing.T) {
	_, p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := p.Chat(context.Background(), Request{Message: "x"})
	if !errors.Is(err, ErrRateLimit) {
		t.Errorf("err = %v, want ErrRateLimit", err)
	}
}

func TestChatAPIError(t *testing.T) {
	_, p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad model"}}`))
	})

	_, err := p.Chat(context.Background(), Request{Message: "x"})
	if err == nil || !strings.Contains(err.Error(), "bad model") {
		t.Errorf("err = %v, want the API error message", err)
	}
}

func TestChatMalformedBody(t *testing.T) {
	_, p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	_, err := p.Chat(context.Background(), Request{Message: "x"})
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("err = %v, want ErrMalformedOutput", err)
	}
}

func TestChatHistoryOrder(t *testing.T) {
	var gotReq struct {
		Messages []oaiMessage `json:"messages"`
	}
	_, p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody(`{"message":"ok"}`, 1)))
	})

	_, err := p.Chat(context.Background(), Request{
		Message: "et maintenant ?",
		History: []HistoryMessage{
			{Role: "user", Content: "met le titre en rose"},
			{Role: "assistant", Content: "Fait !"},
		},
		Site: site.DefaultSite(),
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	roles := make([]string, len(gotReq.Messages))
	for i, m := range gotReq.Messages {
		roles[i] = m.Role
	}
	want := []string{"system", "user", "assistant", "user"}
	if len(roles) != len(want) {
		t.Fatalf("roles = %v, want %v", roles, want)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Errorf("roles[%d] = %q, want %q", i, roles[i], want[i])
		}
	}
	if gotReq.Messages[3].Content != "et maintenant ?" {
		t.Errorf("last message = %q", gotReq.Messages[3].Content)
	}
}
