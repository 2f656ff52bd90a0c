package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskmgr/internal/commands"
	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
)

// TestLoginCommand_NoToken verifies login fails without --token
func TestLoginCommand_NoToken(t *testing.T) {
	cmd := &commands.LoginCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}

	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if errBuf.String() != "error: token required (use --token)\n" {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
	if cfg.HasToken() {
		t.Error("token.json should not have been written")
	}
}

// TestLoginCommand_StoresToken verifies login writes token.json the REST
// client can load
func TestLoginCommand_StoresToken(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetToken("  secret  ")

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "fresh")}

	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	tok, err := cfg.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if tok == nil || tok.AccessToken != "secret" || tok.TokenType != "Bearer" {
		t.Errorf("unexpected token %+v", tok)
	}
}

// TestLoginCommand_ExtraArgs verifies positional arguments are rejected
func TestLoginCommand_ExtraArgs(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetToken("secret")

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}

	code := cmd.Run(context.Background(), cfg, nil, []string{"extra"}, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if errBuf.String() != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

// TestLogoutCommand_OnlyRemovesToken verifies logout only removes token.json
func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("base_url: http://localhost:8080/api\n"), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}

	tokenPath := filepath.Join(tmpDir, "token.json")
	if err := os.WriteFile(tokenPath, []byte(`{"access_token":"test","token_type":"Bearer"}`), 0600); err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}

	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Error("config.yaml should NOT have been deleted")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout handles not being logged in
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}

	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in\\n', got %q", outBuf.String())
	}
}

// TestLogoutCommand_NotLoggedInQuiet verifies logout is quiet when not logged in
func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}

	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", outBuf.String())
	}
}
