package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"signing": "",
		},
		"mail": map[string]any{
			"fromName": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_SIGNING", want: "secretKey.signing"},
		{envKey: "MAIL_FROMNAME", want: "mail.fromName"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Auth.AccessTokenTTL <= 0 {
		t.Fatal("expected default access token TTL")
	}
	if cfg.Auth.VerifyTokenTTL >= cfg.Auth.AccessTokenTTL {
		t.Fatal("verify token TTL should be shorter than access token TTL")
	}
	if cfg.Upload.Dir == "" || cfg.Upload.URLPrefix == "" {
		t.Fatal("expected default upload settings")
	}
}
