// Package content holds the portfolio data shown by the pages.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

var ErrInvalid = errors.New("content: invalid portfolio")

type Portfolio struct {
	Profile  Profile      `yaml:"profile"`
	Skills   []SkillGroup `yaml:"skills"`
	Contact  Contact      `yaml:"contact"`
	Projects []Project    `yaml:"projects"`
}

type Profile struct {
	Name         string   `yaml:"name"`
	Initials     string   `yaml:"initials"`
	Role         string   `yaml:"role"`
	Bio          string   `yaml:"bio"`
	About        string   `yaml:"about"`
	Badges       []string `yaml:"badges"`
	Traits       []string `yaml:"traits"`
	Availability string   `yaml:"availability"`
	Location     string   `yaml:"location"`
	Status       string   `yaml:"status"`
	Resume       string   `yaml:"resume"`
	Stats        []Stat   `yaml:"stats"`
}

type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type SkillGroup struct {
	Group string   `yaml:"group"`
	Items []string `yaml:"items"`
}

type Contact struct {
	Headline string `yaml:"headline"`
	Pitch    string `yaml:"pitch"`
	Email    string `yaml:"email"`
	Links    []Link `yaml:"links"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Project struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Short      string   `yaml:"short"`
	Long       string   `yaml:"long"`
	Stack      []string `yaml:"stack"`
	Highlights []string `yaml:"highlights"`
	GitHub     string   `yaml:"github"`
	Demo       string   `yaml:"demo"`
	Accent     string   `yaml:"accent"`
}

// Default returns the embedded portfolio.
func Default() (*Portfolio, error) {
	return Parse(defaultPortfolio)
}

// Load reads a portfolio YAML file.
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("content: parse: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate requires a name and unique, non-empty project ids.
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Profile.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(p.Projects))
	for i, pr := range p.Projects {
		if pr.ID == "" {
			return fmt.Errorf("%w: project %d has no id", ErrInvalid, i)
		}
		if seen[pr.ID] {
			return fmt.Errorf("%w: duplicate project id %q", ErrInvalid, pr.ID)
		}
		seen[pr.ID] = true
	}
	return nil
}

func (p *Portfolio) Project(id string) (*Project, bool) {
	for i := range p.Projects {
		if p.Projects[i].ID == id {
			return &p.Projects[i], true
		}
	}
	return nil, false
}

// Markdown renders the project detail page body.
func (pr *Project) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", pr.Title, pr.Short)
	if pr.GitHub != "" || pr.Demo != "" {
		if pr.GitHub != "" {
			fmt.Fprintf(&b, "[View on GitHub](%s)", pr.GitHub)
		}
		if pr.Demo != "" {
			if pr.GitHub != "" {
				b.WriteString(" · ")
			}
			fmt.Fprintf(&b, "[Live Demo](%s)", pr.Demo)
		}
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "## About the Project\n\n%s\n\n", pr.Long)
	if len(pr.Highlights) > 0 {
		b.WriteString("## Key Highlights\n\n")
		for _, h := range pr.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		b.WriteString("\n")
	}
	if len(pr.Stack) > 0 {
		b.WriteString("## Tech Stack\n\n")
		codes := make([]string, len(pr.Stack))
		for i, s := range pr.Stack {
			codes[i] = "`" + s + "`"
		}
		b.WriteString(strings.Join(codes, " ") + "\n")
	}
	return b.String()
}
