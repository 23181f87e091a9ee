package survey

// Label is one of the three fixed answer strings offered for every question.
type Label = string

const (
	LabelYes     Label = "예"
	LabelNo      Label = "아니요"
	LabelUnknown Label = "모르겠어요"
)

// Labels lists the answer choices in display order.
var Labels = []Label{LabelYes, LabelNo, LabelUnknown}

// TriState is a normalized answer.
type TriState int8

const (
	Unknown TriState = iota
	Yes
	No
)

func (v TriState) String() string {
	switch v {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// Score is the grading weight: yes 1, no 0, unknown 0.5.
func (v TriState) Score() float64 {
	switch v {
	case Yes:
		return 1
	case No:
		return 0
	default:
		return 0.5
	}
}

// Bool returns the nullable boolean form used by persisted records.
func (v TriState) Bool() *bool {
	switch v {
	case Yes:
		b := true
		return &b
	case No:
		b := false
		return &b
	default:
		return nil
	}
}

// Normalize maps a raw label to its tri-state value. Only exact matches of
// the yes/no labels are definite; anything else is Unknown.
func Normalize(label string) TriState {
	switch label {
	case LabelYes:
		return Yes
	case LabelNo:
		return No
	default:
		return Unknown
	}
}

// AnswerSet keeps raw labels and normalized values for the same key set.
type AnswerSet struct {
	raw        map[string]string
	normalized map[string]TriState
}

func newAnswerSet() AnswerSet {
	return AnswerSet{
		raw:        make(map[string]string),
		normalized: make(map[string]TriState),
	}
}

// set overwrites both entries for questionID.
func (a *AnswerSet) set(questionID, label string) TriState {
	v := Normalize(label)
	a.raw[questionID] = label
	a.normalized[questionID] = v
	return v
}

func (a *AnswerSet) remove(questionID string) {
	delete(a.raw, questionID)
	delete(a.normalized, questionID)
}

// Raw returns the label recorded for a question.
func (a AnswerSet) Raw(questionID string) (string, bool) {
	l, ok := a.raw[questionID]
	return l, ok
}

// Value returns the normalized answer for a question.
func (a AnswerSet) Value(questionID string) (TriState, bool) {
	v, ok := a.normalized[questionID]
	return v, ok
}

func (a AnswerSet) Len() int { return len(a.raw) }

// RawMap returns a copy of question ID → label.
func (a AnswerSet) RawMap() map[string]string {
	out := make(map[string]string, len(a.raw))
	for k, v := range a.raw {
		out[k] = v
	}
	return out
}

// NormalizedMap returns a copy of question ID → nullable bool.
func (a AnswerSet) NormalizedMap() map[string]*bool {
	out := make(map[string]*bool, len(a.normalized))
	for k, v := range a.normalized {
		out[k] = v.Bool()
	}
	return out
}

func (a AnswerSet) clone() AnswerSet {
	c := newAnswerSet()
	for k, v := range a.raw {
		c.raw[k] = v
	}
	for k, v := range a.normalized {
		c.normalized[k] = v
	}
	return c
}

// AnswerSetFrom builds an answer set from question ID → raw label.
func AnswerSetFrom(raw map[string]string) AnswerSet {
	a := newAnswerSet()
	for id, label := range raw {
		a.set(id, label)
	}
	return a
}

// ValidLabel reports whether label is one of the offered choices.
func ValidLabel(label string) bool {
	for _, l := range Labels {
		if l == label {
			return true
		}
	}
	return false
}
