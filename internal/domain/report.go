package domain

import "time"

// ReportContext tags where in the app a report was written from.
type ReportContext string

const (
	ContextSurvey      ReportContext = "survey"
	ContextMapSearch   ReportContext = "mapSearch"
	ContextMapOverview ReportContext = "mapOverview"
	ContextMenu        ReportContext = "menu"
)

// Label returns the user-facing name of the context. Unknown contexts read
// as the menu.
func (c ReportContext) Label() string {
	switch c {
	case ContextSurvey:
		return "설문"
	case ContextMapSearch:
		return "지도(검색)"
	case ContextMapOverview:
		return "지도(전체)"
	default:
		return "메뉴"
	}
}

// ValidReportContexts is the canonical set of accepted context strings.
var ValidReportContexts = map[string]bool{
	"survey": true, "mapSearch": true, "mapOverview": true, "menu": true,
}

type ReportRecord struct {
	ID           string        `json:"id" bson:"_id"`
	Context      ReportContext `json:"context" bson:"context"`
	ContextLabel string        `json:"contextLabel" bson:"contextLabel"`
	Message      string        `json:"message" bson:"message"`
	Selection    *Selection    `json:"selectedCafe" bson:"selectedCafe"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
}
