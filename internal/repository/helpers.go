package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

// resultColumns is the column order shared by the SQL backends.
const resultColumns = `id, cafe_name, cafe_address, gps_enabled, lat, lng, answers, answers_bool,
	grade_name, grade_emoji, grade_stars, grade_msg, grade_percent, selected_cafe, tags, created_at`

const reportColumns = `id, context, context_label, message, selected_cafe, created_at`

// encodedResult holds the JSON and nullable columns of a result row.
type encodedResult struct {
	answers     []byte
	answersBool []byte
	selection   []byte
	tags        []byte
	lat, lng    *float64
}

func encodeResult(r *domain.ResultRecord) (encodedResult, error) {
	var enc encodedResult
	var err error
	if enc.answers, err = json.Marshal(nonNilStrings(r.RawAnswers)); err != nil {
		return enc, fmt.Errorf("encoding answers: %w", err)
	}
	if enc.answersBool, err = json.Marshal(nonNilBools(r.NormalizedAnswers)); err != nil {
		return enc, fmt.Errorf("encoding normalized answers: %w", err)
	}
	if enc.selection, err = nullableJSON(r.Selection); err != nil {
		return enc, fmt.Errorf("encoding selection: %w", err)
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	if enc.tags, err = json.Marshal(tags); err != nil {
		return enc, fmt.Errorf("encoding tags: %w", err)
	}
	if r.Coordinates != nil {
		lat, lng := r.Coordinates.Lat, r.Coordinates.Lng
		enc.lat, enc.lng = &lat, &lng
	}
	return enc, nil
}

// decodeInto fills the JSON-backed and nullable fields of r.
func (enc encodedResult) decodeInto(r *domain.ResultRecord) error {
	r.RawAnswers = map[string]string{}
	r.NormalizedAnswers = map[string]*bool{}
	if len(enc.answers) > 0 {
		if err := json.Unmarshal(enc.answers, &r.RawAnswers); err != nil {
			return fmt.Errorf("decoding answers: %w", err)
		}
	}
	if len(enc.answersBool) > 0 {
		if err := json.Unmarshal(enc.answersBool, &r.NormalizedAnswers); err != nil {
			return fmt.Errorf("decoding normalized answers: %w", err)
		}
	}
	sel, err := decodeSelection(enc.selection)
	if err != nil {
		return err
	}
	r.Selection = sel
	if len(enc.tags) > 0 {
		if err := json.Unmarshal(enc.tags, &r.Tags); err != nil {
			return fmt.Errorf("decoding tags: %w", err)
		}
	}
	if len(r.Tags) == 0 {
		r.Tags = nil
	}
	if enc.lat != nil && enc.lng != nil {
		r.Coordinates = &domain.Coordinates{Lat: *enc.lat, Lng: *enc.lng}
	}
	return nil
}

// nullableJSON marshals v, returning nil (SQL NULL) for a nil pointer.
func nullableJSON(sel *domain.Selection) ([]byte, error) {
	if sel == nil {
		return nil, nil
	}
	return json.Marshal(sel)
}

func decodeSelection(b []byte) (*domain.Selection, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var sel domain.Selection
	if err := json.Unmarshal(b, &sel); err != nil {
		return nil, fmt.Errorf("decoding selection: %w", err)
	}
	return &sel, nil
}

// nullBytes converts a nullable TEXT column into the byte form used by the
// decoders.
func nullBytes(s sql.NullString) []byte {
	if !s.Valid {
		return nil
	}
	return []byte(s.String)
}

// bytesToValue returns nil (SQL NULL) for an empty slice, otherwise the
// slice as a string for TEXT storage.
func bytesToValue(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nonNilStrings(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilBools(m map[string]*bool) map[string]*bool {
	if m == nil {
		return map[string]*bool{}
	}
	return m
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// timeLayout keeps a fixed fraction width so stored timestamps sort
// lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
