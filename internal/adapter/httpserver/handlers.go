package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/sarensabesk/HireAI/internal/adapter/observability"
	"github.com/sarensabesk/HireAI/internal/config"
	"github.com/sarensabesk/HireAI/internal/domain"
	"github.com/sarensabesk/HireAI/internal/usecase"
)

// defaultDomain labels resumes uploaded without an explicit career field.
const defaultDomain = "General Career Field"

// ResumeSession is the single-slot resume store consumed by the handlers.
type ResumeSession interface {
	Set(r domain.Resume)
	Get() (domain.Resume, bool)
	Clear() bool
}

// Analyzer scores a resume against a job description and lists history.
type Analyzer interface {
	Analyze(ctx domain.Context, resume domain.Resume, jobText string) domain.Analysis
	History(ctx domain.Context) ([]domain.Analysis, error)
}

// ArtifactGenerator produces generator-backed career artifacts.
type ArtifactGenerator interface {
	CoverLetter(ctx domain.Context, resume domain.Resume, jobText, company string) string
	ColdEmail(ctx domain.Context, resume domain.Resume, req usecase.ColdEmailRequest) domain.ColdEmail
	InterviewPrep(ctx domain.Context, resume domain.Resume, jobText string) domain.InterviewPrep
	Roadmap(ctx domain.Context, resume domain.Resume, targetRole, currentExperience string) (domain.Roadmap, error)
}

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Session    ResumeSession
	Analyzer   Analyzer
	Artifacts  ArtifactGenerator
	Extractor  domain.TextExtractor
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, session ResumeSession, analyzer Analyzer, artifacts ArtifactGenerator, extractor domain.TextExtractor, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Session: session, Analyzer: analyzer, Artifacts: artifacts, Extractor: extractor, DBCheck: dbCheck, RedisCheck: redisCheck}
}

// allowedExt enforces the upload allowlist: .pdf, .docx, .txt.
func allowedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// activeResume fetches the session resume or writes the 400 the original
// surface used for every resume-dependent endpoint.
func (s *Server) activeResume(w http.ResponseWriter, r *http.Request) (domain.Resume, bool) {
	resume, ok := s.Session.Get()
	if !ok {
		writeError(w, r, fmt.Errorf("%w: upload a resume first", domain.ErrInvalidArgument), nil)
		return domain.Resume{}, false
	}
	return resume, true
}

// UploadResumeHandler accepts a multipart resume upload, extracts its text
// and replaces the session slot.
func (s *Server) UploadResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code:    "INVALID_ARGUMENT",
					Message: "payload too large",
					Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume file required", domain.ErrInvalidArgument), map[string]string{"field": "resume"})
			return
		}
		defer func() { _ = file.Close() }()

		if !allowedExt(header.Filename) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
				Code:    "INVALID_ARGUMENT",
				Message: "unsupported file type",
				Details: map[string]any{"filename": header.Filename},
			}})
			return
		}
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		text, err := s.Extractor.Extract(r.Context(), header.Filename, data)
		if err != nil {
			writeError(w, r, err, map[string]string{"filename": header.Filename})
			return
		}
		careerField := strings.TrimSpace(r.FormValue("domain"))
		if careerField == "" {
			careerField = defaultDomain
		}
		resume := domain.Resume{
			Filename:   header.Filename,
			Text:       text,
			Domain:     careerField,
			UploadedAt: time.Now().UTC(),
		}
		s.Session.Set(resume)
		LoggerFrom(r).Info("resume uploaded",
			"filename", header.Filename,
			"domain", careerField,
			"text_length", len(text))
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":     "Resume processed successfully",
			"filename":    header.Filename,
			"domain":      careerField,
			"text_length": len(text),
		})
	}
}

// DeleteResumeHandler clears the session slot.
func (s *Server) DeleteResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Session.Clear() {
			writeError(w, r, fmt.Errorf("%w: no resume to delete", domain.ErrNotFound), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Resume deleted"})
	}
}

// AnalyzeHandler scores the session resume against a job description.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := s.activeResume(w, r)
		if !ok {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			JobRequirement string `json:"job_requirement" validate:"required,max=20000"`
			Domain         string `json:"domain" validate:"omitempty,max=100"`
		}
		if !decodeAndValidate(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.JobRequirement) == "" {
			writeError(w, r, fmt.Errorf("%w: job requirement empty", domain.ErrInvalidArgument), nil)
			return
		}
		if req.Domain != "" {
			resume.Domain = req.Domain
		}
		analysis := s.Analyzer.Analyze(r.Context(), resume, req.JobRequirement)
		matchRate := 0.0
		if analysis.Keywords.TotalJobKeywords > 0 {
			matchRate = float64(analysis.Keywords.TotalMatched) / float64(analysis.Keywords.TotalJobKeywords)
		}
		observability.ObserveAnalysis(analysis.Score, matchRate, analysis.Failed())
		// a gate failure still carries the full result object, only the
		// status changes
		if analysis.Failed() {
			writeJSON(w, http.StatusBadRequest, analysis)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}

// HistoryHandler lists recent analyses, newest first.
func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analyses, err := s.Analyzer.History(r.Context())
		if err != nil {
			writeError(w, r, fmt.Errorf("history: %w", err), nil)
			return
		}
		if analyses == nil {
			analyses = []domain.Analysis{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
	}
}

// CoverLetterHandler generates a cover letter for the session resume.
func (s *Server) CoverLetterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := s.activeResume(w, r)
		if !ok {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			JobRequirement string `json:"job_requirement" validate:"required,max=20000"`
			CompanyName    string `json:"company_name" validate:"omitempty,max=200"`
		}
		if !decodeAndValidate(w, r, &req) {
			return
		}
		letter := s.Artifacts.CoverLetter(r.Context(), resume, req.JobRequirement, req.CompanyName)
		writeJSON(w, http.StatusOK, map[string]string{"cover_letter": letter})
	}
}

// ColdEmailHandler generates a structured cold email for the session resume.
func (s *Server) ColdEmailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := s.activeResume(w, r)
		if !ok {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			CompanyName       string `json:"company_name" validate:"required,max=200"`
			EmailType         string `json:"email_type" validate:"omitempty,max=50"`
			RecipientName     string `json:"recipient_name" validate:"omitempty,max=200"`
			RecipientTitle    string `json:"recipient_title" validate:"omitempty,max=200"`
			JobRequirement    string `json:"job_requirement" validate:"omitempty,max=20000"`
			AdditionalContext string `json:"additional_context" validate:"omitempty,max=5000"`
		}
		if !decodeAndValidate(w, r, &req) {
			return
		}
		emailType := req.EmailType
		if emailType == "" {
			emailType = "direct"
		}
		if !validEmailType(emailType) {
			writeError(w, r,
				fmt.Errorf("%w: invalid email type, must be one of: %s", domain.ErrInvalidArgument, strings.Join(usecase.ValidEmailTypes, ", ")),
				map[string]string{"email_type": emailType})
			return
		}
		email := s.Artifacts.ColdEmail(r.Context(), resume, usecase.ColdEmailRequest{
			Type:              emailType,
			CompanyName:       req.CompanyName,
			RecipientName:     req.RecipientName,
			RecipientTitle:    req.RecipientTitle,
			JobRequirement:    req.JobRequirement,
			AdditionalContext: req.AdditionalContext,
		})
		writeJSON(w, http.StatusOK, email)
	}
}

func validEmailType(t string) bool {
	for _, v := range usecase.ValidEmailTypes {
		if t == v {
			return true
		}
	}
	return false
}

// InterviewPrepHandler generates interview preparation material.
func (s *Server) InterviewPrepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := s.activeResume(w, r)
		if !ok {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			JobRequirement string `json:"job_requirement" validate:"required,max=20000"`
		}
		if !decodeAndValidate(w, r, &req) {
			return
		}
		prep := s.Artifacts.InterviewPrep(r.Context(), resume, req.JobRequirement)
		writeJSON(w, http.StatusOK, prep)
	}
}

// RoadmapHandler generates a structured career-transition roadmap.
func (s *Server) RoadmapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := s.activeResume(w, r)
		if !ok {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			TargetRole        string `json:"target_role" validate:"required,max=200"`
			CurrentExperience string `json:"current_experience" validate:"omitempty,max=5000"`
		}
		if !decodeAndValidate(w, r, &req) {
			return
		}
		roadmap, err := s.Artifacts.Roadmap(r.Context(), resume, req.TargetRole, req.CurrentExperience)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, roadmap)
	}
}

// HealthzHandler responds 200 once the process is serving.
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler probes the optional backing stores.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks = append(checks, check{Name: "redis", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "redis", OK: true})
			}
		}
		st := http.StatusOK
		for _, c := range checks {
			if !c.OK {
				st = http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, writing the 400 itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
		return false
	}
	if details, err := validateStruct(dst); err != nil {
		writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), details)
		return false
	}
	return true
}
