// Package tasks describes drawing prompts and chooses what a learner
// should draw next.
package tasks

import (
	"context"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/errors"
)

// Task is a drawing exercise: an id, the prompt image and what to do with it.
type Task struct {
	ID           string `json:"task_id" toml:"id"`
	ImageURL     string `json:"image_url" toml:"image_url"`
	Instructions string `json:"instructions" toml:"instructions"`
}

// Validate checks that the task can be served to clients.
func (t Task) Validate() error {
	if t.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "task id is required")
	}
	if t.ImageURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "task %q: image_url is required", t.ID)
	}
	return nil
}

// DefaultPrompt is the task served when nothing else is configured.
var DefaultPrompt = Task{
	ID:           "cube_001",
	ImageURL:     "/static/prompts/cube_001.png",
	Instructions: "Draw this cube as accurately as possible.",
}

// Selector picks the next task for a learner.
type Selector interface {
	Next(ctx context.Context, userID string, a analysis.Result) (Task, error)
}

// FixedSelector ignores the learner and the analysis and always returns
// the same task.
type FixedSelector struct {
	Task Task
}

// NewFixedSelector returns a selector for t, or DefaultPrompt if t has no id.
func NewFixedSelector(t Task) *FixedSelector {
	if t.ID == "" {
		t = DefaultPrompt
	}
	return &FixedSelector{Task: t}
}

// Next implements Selector.
func (s *FixedSelector) Next(context.Context, string, analysis.Result) (Task, error) {
	return s.Task, nil
}

var _ Selector = (*FixedSelector)(nil)
