package domain

import "time"

// ResultRecord is a finalized survey handed to the persistence collaborator.
// NormalizedAnswers holds nil for "don't know".
type ResultRecord struct {
	ID                string            `json:"id" bson:"_id"`
	SubjectName       string            `json:"cafeName" bson:"cafeName"`
	SubjectAddress    string            `json:"cafeAddress,omitempty" bson:"cafeAddress,omitempty"`
	GPSEnabled        bool              `json:"gpsEnabled" bson:"gpsEnabled"`
	Coordinates       *Coordinates      `json:"location" bson:"location"`
	RawAnswers        map[string]string `json:"answers" bson:"answers"`
	NormalizedAnswers map[string]*bool  `json:"answersBool" bson:"answersBool"`
	Grade             Grade             `json:"grade" bson:"grade"`
	Selection         *Selection        `json:"selectedCafe" bson:"selectedCafe"`
	Tags              []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt         time.Time         `json:"createdAt" bson:"createdAt"`
}

// ResultPoint is a stored result projected for map display.
type ResultPoint struct {
	ID      string   `json:"id"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Stars   int      `json:"stars"`
	Tags    []string `json:"options"`
}
