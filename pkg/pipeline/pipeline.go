// Package pipeline runs a drawing submission through analysis, feedback and
// next-task selection.
//
// This package is the single place where the stages are wired together, so
// the HTTP API and the CLI behave identically.
//
// # Architecture
//
// A submission passes through three stages:
//
//  1. Analyze: decode the drawing, score it and estimate stroke metrics
//  2. Feedback: turn the analysis into text and a score
//  3. Select: choose the learner's next task
//
// Analysis is deterministic for a given image, strokes payload and scorer,
// so its result is cached by content hash. Feedback and selection are cheap
// and always run. A failure at any stage aborts the submission; there are
// no partial results.
//
// # Usage
//
//	runner := pipeline.NewRunner(analyzer, nil, nil, cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Submission{
//	    UserID: "u-42",
//	    TaskID: "cube_001",
//	    Image:  pngBytes,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Feedback.Text, res.NextTask.ID)
package pipeline

import (
	"time"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/errors"
	"github.com/waterants/sketchcoach/pkg/feedback"
	"github.com/waterants/sketchcoach/pkg/tasks"
)

// Submission is one uploaded attempt at a task.
type Submission struct {
	UserID string
	TaskID string
	Image  []byte

	// Strokes is the raw JSON strokes payload; empty when none was sent.
	Strokes string
}

// Validate checks that all required fields are present.
func (s Submission) Validate() error {
	if s.UserID == "" {
		return errors.New(errors.ErrCodeMissingField, "user_id is required")
	}
	if s.TaskID == "" {
		return errors.New(errors.ErrCodeMissingField, "task_id is required")
	}
	if len(s.Image) == 0 {
		return errors.New(errors.ErrCodeMissingField, "image is required")
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this submission in logs and hooks.
	ID string

	Analysis analysis.Result
	Feedback feedback.Result
	NextTask tasks.Task

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline timing information.
type Stats struct {
	AnalyzeTime time.Duration
	TotalTime   time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	AnalysisHit bool
}
