package tasks

import (
	"context"
	"testing"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/errors"
)

func TestDefaultPrompt(t *testing.T) {
	if DefaultPrompt.ID != "cube_001" {
		t.Errorf("ID = %q", DefaultPrompt.ID)
	}
	if DefaultPrompt.ImageURL != "/static/prompts/cube_001.png" {
		t.Errorf("ImageURL = %q", DefaultPrompt.ImageURL)
	}
	if err := DefaultPrompt.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{"complete", Task{ID: "a", ImageURL: "/a.png"}, false},
		{"no instructions is fine", Task{ID: "a", ImageURL: "/a.png"}, false},
		{"missing id", Task{ImageURL: "/a.png"}, true},
		{"missing url", Task{ID: "a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %q, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestFixedSelectorIgnoresInput(t *testing.T) {
	s := NewFixedSelector(Task{})
	ctx := context.Background()

	inputs := []struct {
		user string
		a    analysis.Result
	}{
		{"alice", analysis.Result{ImageScore: 0.1, FocusArea: analysis.FocusLineConfidence}},
		{"bob", analysis.Result{ImageScore: 0.99, FocusArea: analysis.FocusShapeAccuracy}},
		{"", analysis.Result{}},
	}
	for _, in := range inputs {
		got, err := s.Next(ctx, in.user, in.a)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got != DefaultPrompt {
			t.Errorf("Next(%q) = %+v, want %+v", in.user, got, DefaultPrompt)
		}
	}
}

func TestFixedSelectorConfigured(t *testing.T) {
	want := Task{ID: "sphere_002", ImageURL: "/static/prompts/sphere_002.png"}
	got, err := NewFixedSelector(want).Next(context.Background(), "u", analysis.Result{})
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != want {
		t.Errorf("Next = %+v, want %+v", got, want)
	}
}
