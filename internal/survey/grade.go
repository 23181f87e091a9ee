package survey

import (
	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
)

// Tier thresholds in percent.
const (
	excellentThreshold = 80
	goodThreshold      = 60
)

// Score sums per-question scores over the whole catalog. A question with
// no answer scores as unknown.
func Score(c *catalog.Catalog, answers AnswerSet) (raw float64, total int) {
	for _, q := range c.Questions() {
		v, ok := answers.Value(q.ID)
		if !ok {
			v = Unknown
		}
		raw += v.Score()
		total++
	}
	return raw, total
}

// ComputeGrade converts answers into a tier.
func ComputeGrade(c *catalog.Catalog, answers AnswerSet) domain.Grade {
	raw, total := Score(c, answers)
	percent := 0.0
	if total > 0 {
		percent = raw / float64(total) * 100
	}
	g := TierFor(percent)
	g.Percent = percent
	return g
}

// TierFor returns the grade for a percentage.
func TierFor(percent float64) domain.Grade {
	switch {
	case percent >= excellentThreshold:
		return domain.Grade{
			Tier:    domain.TierExcellent,
			Icon:    "🌿",
			Stars:   3,
			Message: "탄소중립 실천이 잘 되고 있어요!",
		}
	case percent >= goodThreshold:
		return domain.Grade{
			Tier:    domain.TierGood,
			Icon:    "🙂",
			Stars:   2,
			Message: "조금만 더 보완하면 금방 올라갈 거예요.",
		}
	default:
		return domain.Grade{
			Tier:    domain.TierBasic,
			Icon:    "🪴",
			Stars:   1,
			Message: "작은 습관부터 하나씩 실천해 보세요.",
		}
	}
}
