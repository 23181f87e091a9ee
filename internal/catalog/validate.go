package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog wraps every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Validate checks the catalog's flow graph and returns all errors found.
//
// Within a section every question must be reachable from the first one by
// following next links, every non-sentinel next must name a question in the
// same section, and the last question must end the section.
func Validate(c *Catalog) []error {
	var errs []error

	if c.Title == "" {
		errs = append(errs, fmt.Errorf("catalog title is required"))
	}
	if len(c.Sections) == 0 {
		errs = append(errs, fmt.Errorf("catalog has no sections"))
	}

	sectionIDs := make(map[string]bool)
	questionIDs := make(map[string]string)
	for i, s := range c.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if sectionIDs[s.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate section id %q", prefix, s.ID))
		}
		sectionIDs[s.ID] = true
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if len(s.Questions) == 0 {
			errs = append(errs, fmt.Errorf("%s (%s) has no questions", prefix, s.ID))
			continue
		}

		for _, q := range s.Questions {
			if q.ID == "" {
				errs = append(errs, fmt.Errorf("%s: question id is required", prefix))
				continue
			}
			if owner, dup := questionIDs[q.ID]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate question id %q (already in %s)", prefix, q.ID, owner))
			}
			questionIDs[q.ID] = s.ID
			if q.Title == "" {
				errs = append(errs, fmt.Errorf("%s: question %q has no title", prefix, q.ID))
			}
		}

		errs = append(errs, validateFlow(prefix, s)...)
	}

	return errs
}

// validateFlow walks the section from its first question and checks that
// the walk visits every question exactly once before hitting the sentinel.
func validateFlow(prefix string, s Section) []error {
	var errs []error

	last := s.Questions[len(s.Questions)-1]
	if !last.Next.IsAdvance() {
		errs = append(errs, fmt.Errorf("%s: last question %q must end the section, got next %q", prefix, last.ID, last.Next))
	}

	for _, q := range s.Questions {
		if q.Next.IsAdvance() {
			continue
		}
		if q.Next.QuestionID() == "" {
			errs = append(errs, fmt.Errorf("%s: question %q has an empty next reference", prefix, q.ID))
			continue
		}
		if _, ok := s.Question(q.Next.QuestionID()); !ok {
			errs = append(errs, fmt.Errorf("%s: question %q points to %q outside section %s", prefix, q.ID, q.Next, s.ID))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	visited := make(map[string]bool, len(s.Questions))
	cur, _ := s.First()
	for {
		if visited[cur.ID] {
			return append(errs, fmt.Errorf("%s: cycle through question %q", prefix, cur.ID))
		}
		visited[cur.ID] = true
		if cur.Next.IsAdvance() {
			break
		}
		cur, _ = s.Question(cur.Next.QuestionID())
	}
	for _, q := range s.Questions {
		if !visited[q.ID] {
			errs = append(errs, fmt.Errorf("%s: question %q is unreachable from %q", prefix, q.ID, s.Questions[0].ID))
		}
	}
	return errs
}
