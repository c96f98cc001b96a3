// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/tutor-tui/internal/model"
)

// newTestClient returns a client pointed at the given test server.
func newTestClient(srv *httptest.Server) *Client {
	return NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
}

// =============================================================================
// CONFIGURATION TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(nil)

	if client.config.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q, want default", client.config.BaseURL)
	}

	if client.config.Timeout == 0 {
		t.Error("Timeout should have a default")
	}
}

func TestNewClientWithConfig_ZeroFill(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://example.com/"})

	if client.config.BaseURL != "http://example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", client.config.BaseURL)
	}

	if client.config.Timeout == 0 || client.config.LongTimeout == 0 {
		t.Error("zero timeouts should be filled with defaults")
	}
}

// =============================================================================
// AUTH TESTS
// =============================================================================

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "ada@example.com" {
			t.Errorf("Email = %q", req.Email)
		}

		json.NewEncoder(w).Encode(LoginResponse{
			Email: "ada@example.com",
			Name:  "Ada Lovelace",
			Token: "tok-123",
		})
	}))
	defer srv.Close()

	id, err := newTestClient(srv).Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if id.Token != "tok-123" {
		t.Errorf("Token = %q, want 'tok-123'", id.Token)
	}
	if id.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", id.Name)
	}
}

func TestLogin_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad password"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Login(context.Background(), "ada@example.com", "wrong")
	if !IsInvalidCredentials(err) {
		t.Errorf("expected invalid credentials error, got %v", err)
	}
}

func TestRegister_ServerErrorText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email already registered", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestClient(srv).Register(context.Background(), "ada@example.com", "ada", "secret")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "email already registered" {
		t.Errorf("error = %q, want server text surfaced", err.Error())
	}
}

// =============================================================================
// AUTHENTICATED REQUEST TESTS
// =============================================================================

func TestAuthedRequest_NoToken(t *testing.T) {
	client := NewClient()

	_, err := client.Conversations(context.Background())
	if !IsNotAuthenticated(err) {
		t.Errorf("expected not-authenticated short-circuit, got %v", err)
	}

	if err := client.DeleteConversation(context.Background(), "c1"); !IsNotAuthenticated(err) {
		t.Errorf("expected not-authenticated short-circuit, got %v", err)
	}
}

func TestAuthedRequest_TokenHeader(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-token")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok-abc")

	if _, err := client.Conversations(context.Background()); err != nil {
		t.Fatalf("Conversations failed: %v", err)
	}

	if gotToken != "tok-abc" {
		t.Errorf("x-token = %q, want 'tok-abc'", gotToken)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"c1","title":"Photosynthesis"},{"id":"c2","title":""}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	convs, err := client.Conversations(context.Background())
	if err != nil {
		t.Fatalf("Conversations failed: %v", err)
	}

	if len(convs) != 2 {
		t.Fatalf("got %d conversations, want 2", len(convs))
	}
	if convs[0].Title != "Photosynthesis" {
		t.Errorf("Title = %q", convs[0].Title)
	}
}

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversations/c1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"role":"user","text":"What is osmosis?"},
			{"role":"assistant","text":"Osmosis is...","sources":[{"source":"bio.pdf","page":12}]}
		]`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	msgs, err := client.History(context.Background(), "c1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser {
		t.Errorf("Role = %q, want user", msgs[0].Role)
	}
	if len(msgs[1].Sources) != 1 || msgs[1].Sources[0].Page != 12 {
		t.Errorf("Sources = %+v", msgs[1].Sources)
	}
}

func TestDeleteConversation_BestEffort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	// Server failure is swallowed; only transport errors surface.
	if err := client.DeleteConversation(context.Background(), "gone"); err != nil {
		t.Errorf("DeleteConversation returned %v, want nil", err)
	}
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.K != 6 {
			t.Errorf("K = %d, want 6", req.K)
		}
		if req.ConversationID != "chat-1700000000000-abc1234" {
			t.Errorf("ConversationID = %q", req.ConversationID)
		}

		json.NewEncoder(w).Encode(ChatAnswer{
			Answer:  "Mitochondria produce ATP.",
			Sources: []model.SourceRef{{Source: "bio.pdf", Page: 3}},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	answer, err := client.Chat(context.Background(), "What do mitochondria do?", 6, "chat-1700000000000-abc1234")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if answer.Answer != "Mitochondria produce ATP." {
		t.Errorf("Answer = %q", answer.Answer)
	}
	if len(answer.Sources) != 1 {
		t.Errorf("Sources length = %d, want 1", len(answer.Sources))
	}
}

func TestChat_ServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"model overloaded"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	_, err := client.Chat(context.Background(), "q", 6, "c1")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "model overloaded" {
		t.Errorf("error = %q, want detail surfaced", err.Error())
	}
}

// =============================================================================
// DOCUMENT TESTS
// =============================================================================

func TestListPDFs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["a1b2c3_biology.pdf","d4e5f6_chemistry.pdf"]`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	docs, err := client.ListPDFs(context.Background())
	if err != nil {
		t.Fatalf("ListPDFs failed: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].DisplayName() != "biology.pdf" {
		t.Errorf("DisplayName = %q, want 'biology.pdf'", docs[0].DisplayName())
	}
}

func TestUploadPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		f.Close()
		if hdr.Filename != "notes.pdf" {
			t.Errorf("Filename = %q", hdr.Filename)
		}

		json.NewEncoder(w).Encode(UploadResult{Filename: "a1b2_notes.pdf", Pages: 4, Chunks: 17})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	result, err := client.UploadPDF(context.Background(), path)
	if err != nil {
		t.Fatalf("UploadPDF failed: %v", err)
	}

	if result.Pages != 4 || result.Chunks != 17 {
		t.Errorf("result = %+v", result)
	}
}

func TestDeletePDF_EscapesName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.SetToken("tok")

	if err := client.DeletePDF(context.Background(), "a1 b2/notes.pdf"); err != nil {
		t.Fatalf("DeletePDF failed: %v", err)
	}

	if gotPath != "/pdfs/a1%20b2%2Fnotes.pdf" {
		t.Errorf("path = %q", gotPath)
	}
}

// =============================================================================
// ERROR CLASSIFICATION TESTS
// =============================================================================

func TestConnectionError(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1"})
	client.SetToken("tok")

	_, err := client.Conversations(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	if IsNotAuthenticated(err) || IsInvalidCredentials(err) {
		t.Errorf("misclassified error: %v", err)
	}
}
