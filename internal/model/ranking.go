package model

// Side is the judge's verdict token identifying the preferred side of a pair
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Valid reports whether the side is one of the two protocol tokens
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// Rating is a skill belief for one headline
type Rating struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
}

// Headline is a generated headline with its summary and provenance
type Headline struct {
	Text    string `json:"headline"`
	Summary string `json:"summary"`
	Label   string `json:"label,omitempty"`
	Meeting string `json:"meeting,omitempty"` // meeting stem the headline came from
	Ordinal int    `json:"ordinal,omitempty"`
}

// ComparisonResult is the outcome of one judged pair
type ComparisonResult struct {
	Index   int    `json:"index"` // 1-based position in the schedule
	Left    string `json:"left"`
	Right   string `json:"right"`
	Verdict Side   `json:"verdict"`
	Winner  string `json:"winner"`
	Loser   string `json:"loser"`
}

// RankedHeadline is one row of the published ranking
type RankedHeadline struct {
	Rank      int     `json:"rank"`
	Label     string  `json:"label"`
	Headline  string  `json:"headline"`
	Mean      float64 `json:"mean"`
	Deviation float64 `json:"deviation"`
	CI95      float64 `json:"ci95"`
}

// LabelMap links opaque labels (H<k>, S<k>) to literal headline and summary text
type LabelMap struct {
	HeadlinesToLabels map[string]string `json:"headlines_to_labels"`
	LabelsToHeadlines map[string]string `json:"labels_to_headlines"`
	SummariesToLabels map[string]string `json:"summaries_to_labels"`
	LabelsToSummaries map[string]string `json:"labels_to_summaries"`
}
