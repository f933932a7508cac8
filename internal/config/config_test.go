package config

import "testing"

func TestModelName_FollowsProvider(t *testing.T) {
	cfg := Default()

	cfg.LLM.Provider = "ollama"
	if got := cfg.LLM.ModelName(); got != cfg.LLM.OllamaModel {
		t.Errorf("ollama provider reported model %q, want %q", got, cfg.LLM.OllamaModel)
	}

	cfg.LLM.Provider = "gemini"
	if got := cfg.LLM.ModelName(); got != cfg.LLM.GeminiModel {
		t.Errorf("gemini provider reported model %q, want %q", got, cfg.LLM.GeminiModel)
	}
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "llamafile"

	if err := Validate(cfg); err == nil {
		t.Error("expected validation to reject an unknown llm provider")
	}
}
