package service

import (
	"strings"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
)

// unnamedCafe labels points whose record has no name.
const unnamedCafe = "이름 없음"

// answeredYes reports whether a stored record answered the question
// affirmatively. Normalized answers win; raw labels are checked for the
// affirmative spellings older clients wrote.
func answeredYes(rec *domain.ResultRecord, questionID string) bool {
	if v, ok := rec.NormalizedAnswers[questionID]; ok && v != nil {
		return *v
	}
	switch strings.ToLower(strings.TrimSpace(rec.RawAnswers[questionID])) {
	case "예", "네", "yes", "y":
		return true
	default:
		return false
	}
}

// DeriveTags merges a record's stored tags with the tags of tagged catalog
// questions it answered "예", without duplicates. Stored tags come first.
func DeriveTags(c *catalog.Catalog, rec *domain.ResultRecord) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}
	for _, t := range rec.Tags {
		add(t)
	}
	for _, q := range c.Questions() {
		if q.Tag != "" && answeredYes(rec, q.ID) {
			add(q.Tag)
		}
	}
	return out
}

// TagPresets returns the catalog's question tags in order.
func TagPresets(c *catalog.Catalog) []string {
	var out []string
	for _, q := range c.Questions() {
		if q.Tag != "" {
			out = append(out, q.Tag)
		}
	}
	return out
}

// ToPoint projects a record onto the map, substituting Seoul City Hall for
// missing or zero coordinates and a placeholder for a missing name.
func ToPoint(c *catalog.Catalog, rec *domain.ResultRecord) domain.ResultPoint {
	p := domain.ResultPoint{
		ID:      rec.ID,
		Lat:     domain.DefaultLat,
		Lng:     domain.DefaultLng,
		Name:    domain.CoalesceStr(rec.SubjectName, unnamedCafe),
		Address: rec.SubjectAddress,
		Stars:   rec.Grade.Stars,
		Tags:    DeriveTags(c, rec),
	}
	if rec.Coordinates != nil {
		if rec.Coordinates.Lat != 0 {
			p.Lat = rec.Coordinates.Lat
		}
		if rec.Coordinates.Lng != 0 {
			p.Lng = rec.Coordinates.Lng
		}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// Match reports whether a point passes the filter. Keyword matches name or
// address; tag matches any tag containing it. Both are case-insensitive.
func (f PointFilter) Match(p domain.ResultPoint) bool {
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		if !strings.Contains(strings.ToLower(p.Name), kw) && !strings.Contains(strings.ToLower(p.Address), kw) {
			return false
		}
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), tag) {
				return true
			}
		}
		return false
	}
	return true
}
