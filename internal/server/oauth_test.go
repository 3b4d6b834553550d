package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func testConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://127.0.0.1:8123/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: "http://auth.invalid", TokenURL: tokenURL},
	}
}

func TestOAuthHandler(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "token123", "token_type": "Bearer", "expires_in": 3600}`)
	}))
	defer tokenServer.Close()

	t.Run("successful exchange", func(t *testing.T) {
		handler := NewOAuthHandler(testConfig(tokenServer.URL), "state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=authcode", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		select {
		case result := <-handler.Result():
			if result.Error() != nil {
				t.Fatalf("unexpected error: %v", result.Error())
			}
			if result.Token.AccessToken != "token123" {
				t.Errorf("unexpected token: %q", result.Token.AccessToken)
			}
		case <-time.After(time.Second):
			t.Fatal("no result received")
		}
	})

	t.Run("state mismatch", func(t *testing.T) {
		handler := NewOAuthHandler(testConfig(tokenServer.URL), "state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=wrong&code=authcode", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected an error result")
		}
	})

	t.Run("denied authorization", func(t *testing.T) {
		handler := NewOAuthHandler(testConfig(tokenServer.URL), "state123")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=state123&error=access_denied", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected an error result")
		}
	})

	t.Run("second callback rejected", func(t *testing.T) {
		handler := NewOAuthHandler(testConfig(tokenServer.URL), "state123")

		first := httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=authcode", nil)
		handler.ServeHTTP(httptest.NewRecorder(), first)

		second := httptest.NewRequest(http.MethodGet, "/callback?state=state123&code=authcode", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, second)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on replay, got %d", rec.Code)
		}
	})
}

func TestTokenRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens", "youtube.json")
	token := &oauth2.Token{AccessToken: "token123", RefreshToken: "refresh456", TokenType: "Bearer"}

	if err := SaveToken(path, token); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadToken(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.AccessToken != "token123" || loaded.RefreshToken != "refresh456" {
		t.Errorf("unexpected token: %+v", loaded)
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected distinct state tokens")
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
}

func TestBasicRouter(t *testing.T) {
	router := NewBasicRouter()
	router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "pong")
	}))

	t.Run("matching method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("unexpected response: %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}
