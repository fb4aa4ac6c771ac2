package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/resume-scorer/internal/config"
	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/internal/scoring"
	"github.com/fairyhunter13/resume-scorer/internal/usecase"
)

// ExpiredMessage is the soft error body for unknown or consumed tokens.
const ExpiredMessage = "Invalid or expired request"

// Scorer is the evaluation port the upload handler needs.
type Scorer interface {
	Evaluate(ctx context.Context, sub usecase.Submission) (usecase.Evaluation, error)
}

// Redeemer is the feedback port the feedback handler needs.
type Redeemer interface {
	Redeem(ctx context.Context, token string) (string, error)
}

// Server aggregates handler dependencies.
type Server struct {
	Cfg      config.Config
	Evaluate Scorer
	Feedback Redeemer
	// Checks are readiness probes keyed by component name.
	Checks map[string]func(ctx context.Context) error
}

// NewServer constructs an HTTP server with its handlers and probes wired.
func NewServer(cfg config.Config, eval Scorer, feedback Redeemer, checks map[string]func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Evaluate: eval, Feedback: feedback, Checks: checks}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// uploadForm is the validated shape of the multipart fields.
type uploadForm struct {
	FileName       string `validate:"required,max=255"`
	JobDescription string `validate:"required"`
}

// UploadResponse is the /upload body. Scores are percentages with two decimals.
type UploadResponse struct {
	RequestID         string  `json:"request_id"`
	Score             float64 `json:"score"`
	EducationWarning  bool    `json:"education_warning"`
	KeywordMatchScore float64 `json:"keyword_match_score"`
	ActionVerbScore   float64 `json:"action_verb_score"`
	QuantifiedScore   float64 `json:"quantified_score"`
	FormattingScore   float64 `json:"formatting_score"`
	SectionCoverage   float64 `json:"section_coverage"`
}

// NewUploadResponse renders a breakdown for clients.
func NewUploadResponse(token string, b domain.ScoreBreakdown) UploadResponse {
	return UploadResponse{
		RequestID:         token,
		Score:             scoring.Percent(b.FinalScore),
		EducationWarning:  !b.EducationMatch,
		KeywordMatchScore: scoring.Percent(b.KeywordMatch),
		ActionVerbScore:   scoring.Percent(b.ActionVerb),
		QuantifiedScore:   scoring.Percent(b.QuantifiedExperience),
		FormattingScore:   scoring.Percent(b.Formatting),
		SectionCoverage:   scoring.Percent(b.SectionCoverage),
	}
}

// HelloHandler is the liveness greeting.
func (s *Server) HelloHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Hello, World!"})
	}
}

// UploadHandler scores a multipart upload of `file` against `job_description`.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadBytes()
		// Multipart framing and the job description ride on top of the file.
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if isTooLarge(err) {
				s.writeTooLarge(w)
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: file required", domain.ErrInvalidArgument), map[string]string{"file": "required"})
			return
		}
		defer func() { _ = file.Close() }()

		form := uploadForm{FileName: header.Filename, JobDescription: strings.TrimSpace(r.FormValue("job_description"))}
		if err := getValidator().Struct(form); err != nil {
			verrs := map[string]string{}
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				for _, fe := range ve {
					verrs[fieldName(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}
		if header.Size > maxBytes {
			s.writeTooLarge(w)
			return
		}
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: read file: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		ev, err := s.Evaluate.Evaluate(r.Context(), usecase.Submission{
			FileName:       header.Filename,
			Data:           data,
			JobDescription: form.JobDescription,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, NewUploadResponse(ev.Token, ev.Breakdown))
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

func (s *Server) writeTooLarge(w http.ResponseWriter) {
	writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
		Code:    "PAYLOAD_TOO_LARGE",
		Message: "payload too large",
		Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
	}})
}

func fieldName(f string) string {
	switch f {
	case "FileName":
		return "file"
	case "JobDescription":
		return "job_description"
	}
	return strings.ToLower(f)
}

// FeedbackHandler redeems {request_id} for LLM feedback. Unknown or consumed
// tokens get a 200 with a soft error body.
func (s *Server) FeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "request_id")
		if token == "" || len(token) > 128 {
			writeJSON(w, http.StatusOK, map[string]string{"error": ExpiredMessage})
			return
		}
		text, err := s.Feedback.Redeem(r.Context(), token)
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"error": ExpiredMessage})
			return
		}
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"llm_feedback": text})
	}
}

type check struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Details string `json:"details,omitempty"`
}

// ReadyzHandler runs every configured probe and reports 503 if any fails.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		names := make([]string, 0, len(s.Checks))
		for name := range s.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		checks := make([]check, 0, len(names))
		ok := true
		for _, name := range names {
			c := check{Name: name, OK: true}
			if err := s.Checks[name](ctx); err != nil {
				c.OK, c.Details, ok = false, err.Error(), false
			}
			checks = append(checks, c)
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
