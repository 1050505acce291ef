package model

import "fmt"

// Stage marks how far a segment record has progressed through the pipeline.
// Stages only move forward, one step at a time.
type Stage int

const (
	StageSegmented          Stage = iota // agenda segment loaded, nothing attached yet
	StageLegislationMatched              // legislation pass applied
	StageTranscriptMatched               // transcript pass applied
	StageCombined                        // composite record built (or excluded)
	StageHeadlined                       // headline and summary generated
	StageRanked                          // headline entered a published ranking
)

var stageNames = [...]string{
	StageSegmented:          "segmented",
	StageLegislationMatched: "legislation_matched",
	StageTranscriptMatched:  "transcript_matched",
	StageCombined:           "combined",
	StageHeadlined:          "headlined",
	StageRanked:             "ranked",
}

func (s Stage) String() string {
	if s < StageSegmented || s > StageRanked {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage converts a stage name back to a Stage
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}

// CanAdvanceTo reports whether next is the single legal successor of s.
func (s Stage) CanAdvanceTo(next Stage) bool {
	return next == s+1 && next <= StageRanked
}

// MarshalText encodes the stage by name
func (s Stage) MarshalText() ([]byte, error) {
	if s < StageSegmented || s > StageRanked {
		return nil, fmt.Errorf("invalid stage %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stage name
func (s *Stage) UnmarshalText(data []byte) error {
	parsed, err := ParseStage(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
