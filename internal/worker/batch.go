package worker

import (
	"context"
	"sort"
)

// MeetingProcessor runs one stage over a single meeting
type MeetingProcessor interface {
	ProcessMeeting(ctx context.Context, stem string) error
}

// MeetingJob processes one meeting
type MeetingJob struct {
	Stem      string
	Processor MeetingProcessor
}

// Execute executes the meeting job
func (j *MeetingJob) Execute(ctx context.Context) Result {
	return &MeetingResult{
		Stem:  j.Stem,
		Error: j.Processor.ProcessMeeting(ctx, j.Stem),
	}
}

// MeetingResult represents the result of a meeting job
type MeetingResult struct {
	Stem  string
	Error error
}

// GetError returns the error from the meeting result
func (r *MeetingResult) GetError() error {
	return r.Error
}

// BatchProcessor fans meetings out over a worker pool. A failing meeting
// does not stop the others.
type BatchProcessor struct {
	processor   MeetingProcessor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor MeetingProcessor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessMeetings runs every meeting and returns one result per stem, sorted
// by stem. Meetings never started because ctx was cancelled report ctx.Err().
func (b *BatchProcessor) ProcessMeetings(ctx context.Context, stems []string) []*MeetingResult {
	if len(stems) == 0 {
		return []*MeetingResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, stem := range stems {
			if !pool.Submit(&MeetingJob{Stem: stem, Processor: b.processor}) {
				break
			}
		}
		pool.Close()
	}()

	done := make(map[string]*MeetingResult, len(stems))
	for result := range pool.Results() {
		mr := result.(*MeetingResult)
		done[mr.Stem] = mr
	}

	results := make([]*MeetingResult, 0, len(stems))
	for _, stem := range stems {
		if r, ok := done[stem]; ok {
			results = append(results, r)
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		results = append(results, &MeetingResult{Stem: stem, Error: err})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Stem < results[j].Stem
	})
	return results
}
