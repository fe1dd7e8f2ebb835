package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const promptTemplate = `You are Shreyash Londhe's professional AI portfolio assistant.

Your job is to speak like a polished, recruiter-facing assistant.

STYLE RULES:
- Sound natural, confident, and professional.
- Speak like a human assistant, not a robot.
- Use short paragraphs or clean bullet points.
- Do NOT dump raw lists unless asked.
- Highlight strengths clearly.
- Be helpful and conversational.

STRICT ACCURACY RULES:
- ONLY use the resume data below.
- If something is not in the resume, say:
  "That information is not listed in Shreyash's resume."
- NEVER invent skills.
- NEVER assume technologies.
- NEVER exaggerate.

TONE:
Professional, concise, confident, recruiter-friendly.

RESUME DATA:
%s
`

// BuildPrompt renders the system prompt around a resume JSON document.
func BuildPrompt(resume []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(resume), "", "  "); err != nil {
		return "", fmt.Errorf("resume is not valid JSON: %w", err)
	}
	return fmt.Sprintf(promptTemplate, buf.String()), nil
}

// Prompt holds the current system prompt. It is safe for concurrent use.
type Prompt struct {
	mu   sync.RWMutex
	text string
	path string
}

func NewPrompt(text string) *Prompt {
	return &Prompt{text: text}
}

// LoadPrompt builds a Prompt from a resume file.
func LoadPrompt(path string) (*Prompt, error) {
	p := &Prompt{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Prompt) Path() string { return p.path }

func (p *Prompt) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text
}

// Reload rebuilds the prompt from the resume file. On error the previous
// prompt stays in place.
func (p *Prompt) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	text, err := BuildPrompt(data)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.text = text
	p.mu.Unlock()
	return nil
}
