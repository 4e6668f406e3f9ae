package main

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/davesmith10/lsbsteg/internal/config"
	"github.com/davesmith10/lsbsteg/internal/payload"
	"github.com/davesmith10/lsbsteg/internal/steg"
)

func parseTestFlags(t *testing.T, cfg *config.Config, args ...string) (*payloadFlags, error) {
	t.Helper()
	settings = cfg
	logger = slog.New(slog.DiscardHandler)
	t.Setenv(passphraseEnv, "")

	cmd := &cobra.Command{Use: "test"}
	addPayloadFlags(cmd, "encrypt")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return parsePayloadFlags(cmd, "encrypt")
}

func TestPayloadFlagsDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Orientation = "vertical"
	cfg.Codec = "zstd"
	cfg.KDF = "blake3"

	pf, err := parseTestFlags(t, cfg)
	if err != nil {
		t.Fatalf("parsePayloadFlags: %v", err)
	}
	if pf.orientation != steg.Vertical {
		t.Errorf("orientation = %v, want vertical", pf.orientation)
	}
	if pf.codec != payload.CodecZstd {
		t.Errorf("codec = %v, want zstd", pf.codec)
	}
	if pf.kdf != payload.KDFBLAKE3 {
		t.Errorf("kdf = %v, want blake3", pf.kdf)
	}
	if pf.compress || pf.crypt {
		t.Errorf("stages enabled without flags: compress=%v crypt=%v", pf.compress, pf.crypt)
	}
}

func TestPayloadFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Codec = "zstd"

	pf, err := parseTestFlags(t, cfg,
		"--compress", "--codec", "deflate", "--encrypt", "--passphrase", "secret",
		"--kdf", "argon2id", "--vertical")
	if err != nil {
		t.Fatalf("parsePayloadFlags: %v", err)
	}
	if !pf.compress || !pf.crypt {
		t.Errorf("compress=%v crypt=%v, want both true", pf.compress, pf.crypt)
	}
	if pf.codec != payload.CodecDeflate {
		t.Errorf("codec = %v, want deflate", pf.codec)
	}
	if pf.kdf != payload.KDFArgon2id {
		t.Errorf("kdf = %v, want argon2id", pf.kdf)
	}
	if pf.orientation != steg.Vertical {
		t.Errorf("orientation = %v, want vertical", pf.orientation)
	}
	if pf.passphrase != "secret" {
		t.Errorf("passphrase = %q", pf.passphrase)
	}
}

func TestPayloadFlagsPassphraseFromEnv(t *testing.T) {
	settings = config.Default()
	logger = slog.New(slog.DiscardHandler)
	t.Setenv(passphraseEnv, "from-env")

	cmd := &cobra.Command{Use: "test"}
	addPayloadFlags(cmd, "decrypt")
	if err := cmd.ParseFlags([]string{"--decrypt"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	pf, err := parsePayloadFlags(cmd, "decrypt")
	if err != nil {
		t.Fatalf("parsePayloadFlags: %v", err)
	}
	if pf.passphrase != "from-env" {
		t.Errorf("passphrase = %q, want from-env", pf.passphrase)
	}
}

func TestPayloadFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown codec", []string{"--codec", "brotli"}},
		{"unknown kdf", []string{"--kdf", "md5"}},
		{"unknown orientation", []string{"--orientation", "diagonal"}},
		{"passphrase without encrypt", []string{"--passphrase", "secret"}},
		{"vertical against explicit horizontal", []string{"--vertical", "--orientation", "horizontal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTestFlags(t, config.Default(), tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPayloadFlagsVerticalAgreesWithOrientation(t *testing.T) {
	pf, err := parseTestFlags(t, config.Default(), "--vertical", "--orientation", "columns")
	if err != nil {
		t.Fatalf("parsePayloadFlags: %v", err)
	}
	if pf.orientation != steg.Vertical {
		t.Errorf("orientation = %v, want vertical", pf.orientation)
	}
}

func TestDecodeHelpMentionsNULTrimming(t *testing.T) {
	if !strings.Contains(decodeCmd.Long, "trailing NUL bytes") {
		t.Errorf("decode help does not describe NUL trimming:\n%s", decodeCmd.Long)
	}
}
