package config

import (
	"testing"
	"time"
)

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mistral")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown LLM_PROVIDER")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMProvider != ProviderGemini {
		t.Fatalf("expected default provider gemini, got %q", cfg.LLMProvider)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %v", cfg.LLMTimeout)
	}
}

func TestLoadTimeoutSeconds(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_TIMEOUT", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMTimeout != 90*time.Second {
		t.Fatalf("expected timeout 90s, got %v", cfg.LLMTimeout)
	}
	if cfg.LLMProvider != ProviderOpenAI {
		t.Fatalf("expected provider openai, got %q", cfg.LLMProvider)
	}
}
