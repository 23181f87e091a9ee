package domain

type GradeTier string

const (
	TierExcellent GradeTier = "최우수"
	TierGood      GradeTier = "양호"
	TierBasic     GradeTier = "기초"
)

// Grade is derived from answers and never stored as session state; it is
// only persisted as part of a finalized result.
type Grade struct {
	Tier    GradeTier `json:"name" bson:"name"`
	Icon    string    `json:"emoji" bson:"emoji"`
	Stars   int       `json:"stars" bson:"stars"`
	Message string    `json:"msg" bson:"msg"`
	Percent float64   `json:"percent" bson:"percent"`
}
