package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSecretFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	return path
}

func TestGetSecretDirectEnvWins(t *testing.T) {
	t.Setenv("REHAB_TEST_SECRET", "from-env")
	t.Setenv("REHAB_TEST_SECRET_FILE", writeSecretFile(t, "from-file"))

	if got := GetSecret("REHAB_TEST_SECRET", "fallback"); got != "from-env" {
		t.Errorf("GetSecret() = %q, want %q", got, "from-env")
	}
}

func TestGetSecretFromFile(t *testing.T) {
	t.Run("plain content", func(t *testing.T) {
		t.Setenv("REHAB_TEST_SECRET_FILE", writeSecretFile(t, "pg-abc123xyz789"))

		if got := GetSecret("REHAB_TEST_SECRET", ""); got != "pg-abc123xyz789" {
			t.Errorf("GetSecret() = %q, want %q", got, "pg-abc123xyz789")
		}
	})

	t.Run("surrounding whitespace trimmed", func(t *testing.T) {
		// Docker secret files routinely end in a newline.
		t.Setenv("REHAB_TEST_SECRET_FILE", writeSecretFile(t, "  pg-abc123xyz789\n\t"))

		if got := GetSecret("REHAB_TEST_SECRET", ""); got != "pg-abc123xyz789" {
			t.Errorf("GetSecret() = %q, want %q", got, "pg-abc123xyz789")
		}
	})

	t.Run("unreadable file falls back to default", func(t *testing.T) {
		t.Setenv("REHAB_TEST_SECRET_FILE", "/nonexistent/run/secrets/jwt_secret")

		if got := GetSecret("REHAB_TEST_SECRET", "fallback"); got != "fallback" {
			t.Errorf("GetSecret() = %q, want %q", got, "fallback")
		}
	})
}

func TestGetSecretDefault(t *testing.T) {
	os.Unsetenv("REHAB_TEST_SECRET")
	os.Unsetenv("REHAB_TEST_SECRET_FILE")

	if got := GetSecret("REHAB_TEST_SECRET", "dev-mode-secret"); got != "dev-mode-secret" {
		t.Errorf("GetSecret() = %q, want %q", got, "dev-mode-secret")
	}
	if got := GetSecret("REHAB_TEST_SECRET", ""); got != "" {
		t.Errorf("GetSecret() = %q, want empty string", got)
	}
}
