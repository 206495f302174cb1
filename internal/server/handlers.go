package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/waterants/sketchcoach/pkg/buildinfo"
	"github.com/waterants/sketchcoach/pkg/errors"
	"github.com/waterants/sketchcoach/pkg/pipeline"
)

// multipartMemory is how much of a form is buffered in memory before file
// parts spill to disk.
const multipartMemory = 8 << 20

// SubmitResponse is the body returned by POST /submit.
type SubmitResponse struct {
	Feedback      string  `json:"feedback"`
	Score         float64 `json:"score"`
	NextTaskID    string  `json:"next_task_id"`
	NextPromptURL string  `json:"next_prompt_url"`
}

// HealthResponse is the body returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if s.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	}

	sub, err := s.readSubmission(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), sub)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SubmitResponse{
		Feedback:      res.Feedback.Text,
		Score:         res.Feedback.Score,
		NextTaskID:    res.NextTask.ID,
		NextPromptURL: res.NextTask.ImageURL,
	})
}

// readSubmission extracts a submission from a multipart form. All missing
// required fields are reported together.
func (s *Server) readSubmission(r *http.Request) (pipeline.Submission, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return pipeline.Submission{}, errors.New(errors.ErrCodePayloadTooLarge,
				"upload exceeds %d bytes", tooLarge.Limit)
		}
		return pipeline.Submission{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "expected a multipart form")
	}
	defer r.MultipartForm.RemoveAll()

	sub := pipeline.Submission{
		UserID:  r.PostFormValue("user_id"),
		TaskID:  r.PostFormValue("task_id"),
		Strokes: r.PostFormValue("strokes"),
	}

	var missing []string
	if sub.UserID == "" {
		missing = append(missing, "user_id")
	}
	if sub.TaskID == "" {
		missing = append(missing, "task_id")
	}

	file, _, err := r.FormFile("image")
	switch {
	case stderrors.Is(err, http.ErrMissingFile):
		missing = append(missing, "image")
	case err != nil:
		return pipeline.Submission{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read image part")
	default:
		defer file.Close()
		sub.Image, err = io.ReadAll(file)
		if err != nil {
			return pipeline.Submission{}, errors.Wrap(errors.ErrCodeInternal, err, "read image part")
		}
		if len(sub.Image) == 0 {
			missing = append(missing, "image")
		}
	}

	if len(missing) > 0 {
		return pipeline.Submission{}, errors.New(errors.ErrCodeMissingField,
			"missing required fields: %s", strings.Join(missing, ", "))
	}
	return sub, nil
}

func (s *Server) handleTask(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Prompt)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Info: buildinfo.Get()})
}

// fail logs err and writes its JSON form. Server-side failures get a
// generic message; the cause only goes to the log.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(code)

	logger := s.logger.With("request_id", middleware.GetReqID(r.Context()), "code", code)
	if status >= http.StatusInternalServerError {
		logger.Error("submission failed", "err", err)
		writeError(w, status, string(code), "internal server error")
		return
	}
	logger.Warn("submission rejected", "err", err)
	writeError(w, status, string(code), errors.UserMessage(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
