package googletasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"

	"todotour/internal/config"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestSaveToken_RoundTrip(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	token := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}

	if err := saveToken(cfg.TokenPath(), token); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	info, err := os.Stat(cfg.TokenPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	got, err := loadToken(cfg)
	if err != nil {
		t.Fatalf("loadToken: %v", err)
	}
	if got.AccessToken != "a" || got.RefreshToken != "r" {
		t.Errorf("unexpected token: %#v", got)
	}
}

func TestLoadToken_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.TokenFile, "{")

	if _, err := loadToken(&config.Config{Dir: dir}); err == nil {
		t.Error("expected error for corrupt token file")
	}
}

func TestLoadOAuthConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OAuthClientFile, testOAuthClient)

	oc, err := loadOAuthConfig(&config.Config{Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oc.ClientID != "test" {
		t.Errorf("expected client id %q, got %q", "test", oc.ClientID)
	}
	if len(oc.Scopes) != 1 || oc.Scopes[0] != Scope {
		t.Errorf("unexpected scopes: %v", oc.Scopes)
	}
}

func TestTokenValid_NoRefreshToken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OAuthClientFile, testOAuthClient)
	writeFile(t, dir, config.TokenFile, `{"access_token":"x","token_type":"Bearer"}`)

	if TokenValid(context.Background(), &config.Config{Dir: dir}) {
		t.Error("a token without refresh token must not be valid")
	}
}

func TestTokenValid_NoToken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OAuthClientFile, testOAuthClient)

	if TokenValid(context.Background(), &config.Config{Dir: dir}) {
		t.Error("a missing token must not be valid")
	}
}

func TestLogin_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.OAuthClientFile, testOAuthClient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var prompt nopWriter
	err := Login(ctx, &config.Config{Dir: dir}, &prompt)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(filepath.Join(dir, config.TokenFile)); !os.IsNotExist(statErr) {
		t.Error("no token must be written when login is cancelled")
	}
}

type nopWriter struct{ n int }

func (w *nopWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}
