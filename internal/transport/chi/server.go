package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/slotgate/internal/domain"
	domdoc "github.com/kailas-cloud/slotgate/internal/domain/document"
	"github.com/kailas-cloud/slotgate/internal/domain/match"
	"github.com/kailas-cloud/slotgate/internal/domain/query"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
	"github.com/kailas-cloud/slotgate/internal/domain/verdict"
	logpkg "github.com/kailas-cloud/slotgate/internal/logger"
	"github.com/kailas-cloud/slotgate/internal/transport/api"
	"github.com/kailas-cloud/slotgate/internal/usecase/compare"
	gateuc "github.com/kailas-cloud/slotgate/internal/usecase/gate"
	healthuc "github.com/kailas-cloud/slotgate/internal/usecase/health"
	"github.com/kailas-cloud/slotgate/internal/version"
)

const defaultMaxBatchSize = 500

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Config tunes request handling.
type Config struct {
	Matcher          match.Matcher
	FuzzyMaxDistance int
	MaxBatchSize     int
	MaxBodyBytes     int64
	// MockScore is the similarity given to documents without a score. Nil selects the default.
	MockScore *float64
	MinScore  float64
}

// Server exposes the slot gate over HTTP.
type Server struct {
	cfg           Config
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(cfg Config, logger *zap.Logger) *Server {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = defaultMaxBatchSize
	}
	if cfg.MockScore == nil {
		score := compare.DefaultMockScore
		cfg.MockScore = &score
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, health: healthuc.New(gateuc.New(cfg.Matcher)), logger: logger}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidSlotName, http.StatusBadRequest, api.ErrorResponseCodeInvalidSlotName),
		sentinelHandler(domain.ErrInvalidMatchStrategy, http.StatusBadRequest, api.ErrorResponseCodeInvalidMatch),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidDocument, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/slots", s.ListSlots)
		r.Post("/evaluate", s.Evaluate)
		r.Post("/evaluate/batch", s.EvaluateBatch)
		r.Post("/compare", s.Compare)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, api.HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// ListSlots handles GET /v1/slots.
func (s *Server) ListSlots(w http.ResponseWriter, _ *http.Request) {
	names := slot.All()
	slots := make([]string, len(names))
	for i, n := range names {
		slots[i] = n.String()
	}
	writeJSON(w, http.StatusOK, api.SlotsResponse{
		Slots:           slots,
		MatchStrategies: []string{string(match.Exact), string(match.Substring), string(match.Fuzzy)},
		DefaultMatch:    string(s.cfg.Matcher.Strategy()),
	})
}

// Evaluate handles POST /v1/evaluate.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req api.EvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	g, err := s.gateFor(r, req.Match)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	q, err := queryFromAPI(req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	doc, err := documentFromAPI(req.Document)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	v, err := g.Evaluate(q, doc)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Evaluation{DocumentID: doc.ID(), Verdict: verdictToAPI(v)})
}

// EvaluateBatch handles POST /v1/evaluate/batch.
func (s *Server) EvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var req api.BatchEvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}

	g, q, docs, ok := s.prepare(w, r, req.Query, req.Documents, req.Match)
	if !ok {
		return
	}

	evals, err := g.EvaluateBatch(q, docs)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := api.BatchEvaluateResponse{Results: make([]api.Evaluation, len(evals))}
	for i, e := range evals {
		resp.Results[i] = api.Evaluation{DocumentID: e.Document.ID(), Verdict: verdictToAPI(e.Verdict)}
		if e.Verdict.IsAccepted() {
			resp.Accepted++
		} else {
			resp.Rejected++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Compare handles POST /v1/compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	var req api.CompareRequest
	if !s.decode(w, r, &req) {
		return
	}

	g, q, docs, ok := s.prepare(w, r, req.Query, req.Documents, req.Match)
	if !ok {
		return
	}

	opts := compare.Options{MinScore: s.cfg.MinScore}
	if req.MinScore != nil {
		if *req.MinScore < 0 || *req.MinScore > 1 {
			writeError(w, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed, "min_score must be within [0, 1]")
			return
		}
		opts.MinScore = *req.MinScore
	}

	scores := make(map[string]float64, len(req.Documents))
	for _, d := range req.Documents {
		if d.Score != nil {
			scores[d.ID] = *d.Score
		}
	}
	scorer := compare.FixedScorer{Scores: scores, Default: *s.cfg.MockScore}

	rep, err := compare.New(scorer, g).Compare(r.Context(), q, docs, opts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := api.CompareResponse{
		Rows:              make([]api.CompareRow, len(rep.Rows)),
		Accepted:          []string{},
		Dropped:           rep.Dropped,
		Indistinguishable: rep.Indistinguishable(),
	}
	for i, row := range rep.Rows {
		resp.Rows[i] = api.CompareRow{
			DocumentID: row.Document.ID(),
			Score:      row.Score,
			Verdict:    verdictToAPI(row.Verdict),
		}
		if row.Verdict.IsAccepted() {
			resp.Accepted = append(resp.Accepted, row.Document.ID())
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// prepare resolves the gate, query and documents shared by batch and compare.
func (s *Server) prepare(
	w http.ResponseWriter, r *http.Request, rq api.Query, rdocs []api.Document, matchName string,
) (*gateuc.InstrumentedGate, query.Query, []domdoc.Document, bool) {
	if len(rdocs) > s.cfg.MaxBatchSize {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed,
			fmt.Sprintf("too many documents (max %d)", s.cfg.MaxBatchSize))
		return nil, query.Query{}, nil, false
	}

	g, err := s.gateFor(r, matchName)
	if err != nil {
		s.handleDomainError(w, r, err)
		return nil, query.Query{}, nil, false
	}
	q, err := queryFromAPI(rq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return nil, query.Query{}, nil, false
	}

	seen := make(map[string]struct{}, len(rdocs))
	docs := make([]domdoc.Document, len(rdocs))
	for i, rd := range rdocs {
		if _, dup := seen[rd.ID]; dup {
			writeError(w, http.StatusBadRequest, api.ErrorResponseCodeValidationFailed,
				fmt.Sprintf("documents[%d]: duplicate id %q", i, rd.ID))
			return nil, query.Query{}, nil, false
		}
		seen[rd.ID] = struct{}{}

		d, err := documentFromAPI(rd)
		if err != nil {
			s.handleDomainError(w, r, fmt.Errorf("documents[%d]: %w", i, err))
			return nil, query.Query{}, nil, false
		}
		docs[i] = d
	}
	return g, q, docs, true
}

// gateFor builds an instrumented gate, honoring a per-request match strategy override.
func (s *Server) gateFor(r *http.Request, matchName string) (*gateuc.InstrumentedGate, error) {
	m := s.cfg.Matcher
	if matchName != "" {
		st, err := match.ParseStrategy(matchName)
		if err != nil {
			return nil, err
		}
		m, err = match.New(st, s.cfg.FuzzyMaxDistance)
		if err != nil {
			return nil, err
		}
	}
	return gateuc.NewInstrumentedGate(gateuc.New(m), logpkg.FromContext(r.Context())), nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, api.ErrorResponseCodeBadRequest, "Invalid request body: trailing data after JSON object")
		return false
	}
	return true
}

func queryFromAPI(q api.Query) (query.Query, error) {
	return query.FromMap(q.Text, q.TargetSlot, q.Constraints)
}

func documentFromAPI(d api.Document) (domdoc.Document, error) {
	slots, err := slot.NewSet(d.Slots)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %q slots: %w", d.ID, err)
	}
	return domdoc.New(d.ID, d.Text, slots)
}

func verdictToAPI(v verdict.Verdict) api.Verdict {
	out := api.Verdict{
		Outcome: string(v.Outcome()),
		Reason:  v.Reason(),
		Kind:    string(v.Kind()),
		Slot:    v.Slot().String(),
	}
	if v.IsAccepted() {
		value := v.Value()
		out.Value = &value
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code api.ErrorResponseCode, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func sentinelHandler(sentinel error, status int, code api.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Info("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, api.ErrorResponseCodeInternalError, "internal error")
}
