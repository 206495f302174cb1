package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/pipeline"
)

// analyzeOutput is the --json form of an analyze run.
type analyzeOutput struct {
	Feedback      string          `json:"feedback"`
	Score         float64         `json:"score"`
	NextTaskID    string          `json:"next_task_id"`
	NextPromptURL string          `json:"next_prompt_url"`
	Analysis      analysis.Result `json:"analysis"`
	Cached        bool            `json:"cached"`
}

// analyzeCommand creates the command that runs one drawing through the
// pipeline without a server.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		strokesPath string
		userID      string
		taskID      string
		noCache     bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze IMAGE",
		Short: "Score a drawing and print feedback",
		Long: `Score a drawing locally, exactly as POST /submit would.

Examples:
  sketchcoach analyze cube.png
  sketchcoach analyze cube.png --strokes strokes.json
  sketchcoach analyze cube.png --json --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := args[0]
			img, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			var strokesJSON string
			if strokesPath != "" {
				data, err := os.ReadFile(strokesPath)
				if err != nil {
					return fmt.Errorf("read strokes: %w", err)
				}
				strokesJSON = string(data)
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if taskID == "" {
				taskID = cfg.Prompt.ID
			}

			ctx := cmd.Context()
			runner, store, err := c.newRunner(ctx, cfg, localCacheOptions(cfg, noCache))
			if err != nil {
				return err
			}
			defer store.Close()

			prog := newProgress(loggerFromContext(ctx))
			res, err := runner.Execute(ctx, pipeline.Submission{
				UserID:  userID,
				TaskID:  taskID,
				Image:   img,
				Strokes: strokesJSON,
			})
			if err != nil {
				return err
			}
			prog.done("Analyzed " + filepath.Base(imagePath))

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(analyzeOutput{
					Feedback:      res.Feedback.Text,
					Score:         res.Feedback.Score,
					NextTaskID:    res.NextTask.ID,
					NextPromptURL: res.NextTask.ImageURL,
					Analysis:      res.Analysis,
					Cached:        res.CacheInfo.AnalysisHit,
				})
			}
			printAnalysis(res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&strokesPath, "strokes", "s", "", "JSON file with the stroke capture")
	cmd.Flags().StringVar(&userID, "user", "local", "user id recorded with the submission")
	cmd.Flags().StringVar(&taskID, "task", "", "task id being attempted (default: configured prompt)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
