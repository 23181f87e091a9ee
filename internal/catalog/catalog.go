// Package catalog holds the static question catalog that drives the survey
// flow: ordered sections, each an ordered list of questions linked by
// explicit next references.
package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// advanceKeyword is the YAML spelling of the section-advance sentinel.
const advanceKeyword = "NEXT_SECTION"

// Next is the tagged reference a question uses to name its successor:
// either another question in the same section, or the end of the section.
type Next struct {
	questionID string
	advance    bool
}

// NextQuestion references a question in the same section.
func NextQuestion(id string) Next {
	return Next{questionID: id}
}

// AdvanceSection is the sentinel meaning "no more questions in this section".
func AdvanceSection() Next {
	return Next{advance: true}
}

// IsAdvance reports whether n is the section-advance sentinel.
func (n Next) IsAdvance() bool { return n.advance }

// QuestionID returns the referenced question ID. It is empty for the sentinel.
func (n Next) QuestionID() string { return n.questionID }

func (n Next) String() string {
	if n.advance {
		return advanceKeyword
	}
	return n.questionID
}

func (n *Next) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decoding next reference: %w", err)
	}
	*n = parseNext(raw)
	return nil
}

func parseNext(raw string) Next {
	raw = strings.TrimSpace(raw)
	if raw == advanceKeyword {
		return AdvanceSection()
	}
	return NextQuestion(raw)
}

func (n Next) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

// MarshalText lets JSON encoders render the reference as a plain string.
func (n Next) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Next) UnmarshalText(text []byte) error {
	*n = parseNext(string(text))
	return nil
}

type Question struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Next  Next   `yaml:"next" json:"next"`
	// Tag is the map feature shown for a cafe that answered "yes".
	Tag string `yaml:"tag,omitempty" json:"tag,omitempty"`
}

type Section struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// First returns the first question of the section.
func (s Section) First() (Question, bool) {
	if len(s.Questions) == 0 {
		return Question{}, false
	}
	return s.Questions[0], true
}

// Question finds a question by ID within the section.
func (s Section) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Catalog is the full survey definition. It is read-only once loaded and
// shared by pointer.
type Catalog struct {
	Title    string    `yaml:"title" json:"title"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Section returns the section at index i.
func (c *Catalog) Section(i int) (Section, bool) {
	if i < 0 || i >= len(c.Sections) {
		return Section{}, false
	}
	return c.Sections[i], true
}

// QuestionCount returns the number of questions across all sections.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Questions)
	}
	return n
}

// Questions returns every question in catalog order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, 0, c.QuestionCount())
	for _, s := range c.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// Locate returns the section index holding the question with the given ID.
func (c *Catalog) Locate(questionID string) (int, bool) {
	for i, s := range c.Sections {
		if _, ok := s.Question(questionID); ok {
			return i, true
		}
	}
	return -1, false
}
