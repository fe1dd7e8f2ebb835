package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default portfolio: %v", err)
	}
	if p.Profile.Name == "" {
		t.Error("expected a profile name")
	}
	if len(p.Projects) < 2 {
		t.Errorf("expected at least 2 projects, got %d", len(p.Projects))
	}
	if len(p.Contact.Links) == 0 {
		t.Error("expected contact links")
	}
}

func TestProject(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	pr, ok := p.Project("ai-portfolio-assistant")
	if !ok {
		t.Fatal("expected ai-portfolio-assistant")
	}
	if pr.Title != "AI Portfolio Assistant" {
		t.Errorf("unexpected title %q", pr.Title)
	}

	if _, ok := p.Project("nonexistent"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestMarkdown(t *testing.T) {
	pr := Project{
		Title:      "Demo",
		Short:      "short",
		Long:       "long",
		Stack:      []string{"Go"},
		Highlights: []string{"fast"},
		Demo:       "https://example.com",
	}
	md := pr.Markdown()
	for _, want := range []string{"# Demo", "## Key Highlights", "- fast", "`Go`", "[Live Demo](https://example.com)"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "GitHub") {
		t.Error("markdown should omit an absent github link")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no name", "profile: {name: ''}"},
		{"missing id", "profile: {name: a}\nprojects: [{title: x}]"},
		{"duplicate id", "profile: {name: a}\nprojects: [{id: x}, {id: x}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	doc := "profile: {name: Ada}\nprojects: [{id: engine, title: Analytical Engine}]\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := p.Project("engine"); !ok {
		t.Error("expected engine project")
	}
}
