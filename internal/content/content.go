// Package content loads the question manifest that framework copy refers to.
package content

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrQuestionNotFound = errors.New("question not found")

type Question struct {
	ID       string     `yaml:"id" json:"id"`
	Number   int        `yaml:"number" json:"number"`
	Question string     `yaml:"question" json:"question"`
	Hint     string     `yaml:"hint,omitempty" json:"hint,omitempty"`
	Children []Question `yaml:"questions,omitempty" json:"questions,omitempty"`
}

type Section struct {
	Slug      string     `yaml:"slug" json:"slug"`
	Name      string     `yaml:"name" json:"name"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// QuestionIDs lists the ids of the section's questions, including those
// nested under multiquestions.
func (s Section) QuestionIDs() []string {
	var ids []string
	var walk func(qs []Question)
	walk = func(qs []Question) {
		for _, q := range qs {
			ids = append(ids, q.ID)
			walk(q.Children)
		}
	}
	walk(s.Questions)
	return ids
}

// Manifest is an ordered list of sections. Questions without an explicit
// number are numbered in manifest order when loaded. A loaded manifest is
// read-only and safe for concurrent use; only manifests built by FromYAML
// or FromFile can look questions up.
type Manifest struct {
	Framework string    `yaml:"framework" json:"framework"`
	Sections  []Section `yaml:"sections" json:"sections"`

	index map[string]Question
}

// GetQuestion returns the question with the given id.
func (m *Manifest) GetQuestion(id string) (Question, error) {
	q, ok := m.index[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
	}
	return q, nil
}

func (m *Manifest) buildIndex() {
	m.index = map[string]Question{}
	var walk func(qs []Question)
	walk = func(qs []Question) {
		for _, q := range qs {
			m.index[q.ID] = q
			walk(q.Children)
		}
	}
	for _, s := range m.Sections {
		walk(s.Questions)
	}
}

// Validate ensures ids are present and unique across the manifest.
func (m *Manifest) Validate() error {
	seen := map[string]bool{}
	for _, s := range m.Sections {
		if s.Slug == "" {
			return fmt.Errorf("content section %q has no slug", s.Name)
		}
		for _, id := range s.QuestionIDs() {
			if id == "" {
				return fmt.Errorf("content section %s has a question without id", s.Slug)
			}
			if seen[id] {
				return fmt.Errorf("content question %s defined twice", id)
			}
			seen[id] = true
		}
	}
	return nil
}

func (m *Manifest) number() {
	next := 1
	var walk func(qs []Question)
	walk = func(qs []Question) {
		for i := range qs {
			if qs[i].Number == 0 {
				qs[i].Number = next
			}
			next = qs[i].Number + 1
			walk(qs[i].Children)
		}
	}
	for i := range m.Sections {
		walk(m.Sections[i].Questions)
	}
}

// FromYAML parses, numbers and validates a manifest.
func FromYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid content yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.number()
	m.buildIndex()
	return &m, nil
}

func FromFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}
