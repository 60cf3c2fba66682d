package gemini

import (
	"context"
	"testing"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "   ", ""); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestGenerateContentOnUninitializedGenerator(t *testing.T) {
	var g *Generator
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for uninitialized generator")
	}
	if g.Model() != "" {
		t.Fatalf("expected empty model name")
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	g := &Generator{}
	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}
