package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/contexts/mapctx"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/schema"
)

// validateRequest is the body of POST /api/v1/validate.
type validateRequest struct {
	Config json.RawMessage `json:"config"`
}

// validateResponse reports a compiled config's measured shape.
type validateResponse struct {
	Valid         bool `json:"valid"`
	Depth         int  `json:"depth,omitempty"`
	FieldMatchers int  `json:"field_matchers,omitempty"`
}

// evaluateRequest is the body of POST /api/v1/evaluate.
type evaluateRequest struct {
	Config  json.RawMessage   `json:"config"`
	Context map[string]string `json:"context"`
	Trace   bool              `json:"trace"`
}

// evaluateResponse carries the evaluation result and the optional trace.
type evaluateResponse struct {
	Matched bool           `json:"matched"`
	Result  any            `json:"result,omitempty"`
	Trace   *traceResponse `json:"trace,omitempty"`
}

type traceResponse struct {
	Steps        []traceStepResponse `json:"steps"`
	UsedFallback bool                `json:"used_fallback"`
}

type traceStepResponse struct {
	Index     int    `json:"index"`
	Predicate string `json:"predicate"`
	Matched   bool   `json:"matched"`
}

// errorResponse is the uniform error envelope. Kind names the entry in the
// construction-error taxonomy so UIs can render errors without parsing
// messages.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type registryResponse struct {
	Extractors []string `json:"extractors"`
	Matchers   []string `json:"matchers"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	m, _, err := s.compile(req.Config)
	if err != nil {
		s.writeCompileError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:         true,
		Depth:         m.Depth(),
		FieldMatchers: m.FieldMatcherCount(),
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	m, _, err := s.compile(req.Config)
	if err != nil {
		s.writeCompileError(w, r, err)
		return
	}
	ctx := req.Context
	if ctx == nil {
		ctx = mapctx.Context{}
	}

	resp := evaluateResponse{}
	if req.Trace {
		t := m.Trace(ctx)
		resp.Matched = t.Matched
		if t.Matched {
			resp.Result = t.Result
		}
		tr := &traceResponse{
			Steps:        make([]traceStepResponse, 0, len(t.Steps)),
			UsedFallback: t.UsedFallback,
		}
		for _, step := range t.Steps {
			tr.Steps = append(tr.Steps, traceStepResponse{
				Index:     step.Index,
				Predicate: step.Predicate,
				Matched:   step.Matched,
			})
		}
		resp.Trace = tr
	} else {
		result, matched := m.Evaluate(ctx)
		resp.Matched = matched
		if matched {
			resp.Result = result
		}
	}
	recordEvaluation(resp.Matched)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegistry(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registryResponse{
		Extractors: s.registry.ExtractorTypeURLs(),
		Matchers:   s.registry.MatcherTypeURLs(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// compile decodes and compiles a config, going through the LRU cache.
func (s *Server) compile(rawConfig json.RawMessage) (*unimatch.Matcher[mapctx.Context, any], *schema.MatcherConfig, error) {
	if len(rawConfig) == 0 {
		return nil, nil, &schema.ParseError{Message: "missing required key \"config\""}
	}
	cfg, err := schema.DecodeJSON(rawConfig)
	if err != nil {
		return nil, nil, err
	}
	canonical, err := schema.EncodeJSON(cfg)
	if err != nil {
		return nil, nil, err
	}
	key := s.cache.key(canonical)
	if m, ok := s.cache.get(key); ok {
		return m, cfg, nil
	}
	m, err := registry.Load(s.registry, cfg, registry.RawActions)
	if err != nil {
		return nil, nil, err
	}
	s.cache.put(key, m)
	return m, cfg, nil
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{errorBody{
			Kind:    "body_too_large",
			Message: "request body exceeds the configured limit",
		}})
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{errorBody{
			Kind:    "invalid_json",
			Message: err.Error(),
		}})
		return false
	}
	return true
}

func (s *Server) writeCompileError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errorKind(err)
	compileErrorsTotal.WithLabelValues(kind).Inc()
	s.logger.Warn("config rejected",
		"request_id", GetRequestID(r.Context()),
		"kind", kind,
		"error", err.Error(),
	)
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorBody{
		Kind:    kind,
		Message: err.Error(),
	}})
}

// errorKind maps the construction-error taxonomy to wire identifiers.
func errorKind(err error) string {
	var (
		parseErr      *schema.ParseError
		unknownURL    *registry.UnknownTypeURLError
		invalidConfig *registry.InvalidConfigError
		actionErr     *registry.ActionDecodeError
		patternLong   *unimatch.PatternTooLongError
		patternBad    *unimatch.InvalidPatternError
		tooManyFMs    *unimatch.TooManyFieldMatchersError
		tooManyPreds  *unimatch.TooManyPredicatesError
		tooDeep       *unimatch.DepthExceededError
	)
	switch {
	case errors.As(err, &parseErr):
		return "config_parse_error"
	case errors.As(err, &unknownURL):
		return "unknown_type_url"
	case errors.As(err, &invalidConfig):
		return "invalid_config"
	case errors.As(err, &actionErr):
		return "invalid_config"
	case errors.As(err, &patternLong):
		return "pattern_too_long"
	case errors.As(err, &patternBad):
		return "invalid_pattern"
	case errors.As(err, &tooManyFMs):
		return "too_many_field_matchers"
	case errors.As(err, &tooManyPreds):
		return "too_many_predicates"
	case errors.As(err, &tooDeep):
		return "depth_exceeded"
	default:
		return "invalid_config"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", "error", err)
	}
}
