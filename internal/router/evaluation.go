package router

import (
	"context"
	"net/http"
	"sync"

	"github.com/DjordjeVuckovic/labeleval/internal/apperr"
	"github.com/DjordjeVuckovic/labeleval/internal/report"
	"github.com/DjordjeVuckovic/labeleval/internal/spec"
	"github.com/labstack/echo/v4"
)

type Evaluator interface {
	Evaluate(ctx context.Context, sp *spec.EvalSpec) (*report.Report, error)
}

type EvaluationRequest struct {
	Spec *spec.EvalSpec `json:"spec,omitempty"`
}

// Options configure where evaluations may read from.
type Options struct {
	// DefaultSpec is used when a request carries no spec. May be nil.
	DefaultSpec *spec.EvalSpec
	// DataDir confines the paths of request specs. Request specs are
	// rejected when it is empty.
	DataDir string
	// PgConn is the connection used by request specs with a postgres reference.
	PgConn string
}

type EvaluationRouter struct {
	e         *echo.Echo
	evaluator Evaluator
	opts      Options

	mu     sync.RWMutex
	latest *report.Report
}

func NewEvaluationRouter(e *echo.Echo, evaluator Evaluator, opts Options) *EvaluationRouter {
	return &EvaluationRouter{
		e:         e,
		evaluator: evaluator,
		opts:      opts,
	}
}

func (r *EvaluationRouter) Bind() {
	g := r.e.Group("/api/v1")
	g.GET("/spec", r.specHandler)
	g.POST("/evaluations", r.evaluateHandler)
	g.GET("/evaluations/latest", r.latestHandler)
}

func (r *EvaluationRouter) specHandler(c echo.Context) error {
	if r.opts.DefaultSpec == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no default spec configured")
	}
	redacted := *r.opts.DefaultSpec
	redacted.Reference.Connection = ""
	return c.JSON(http.StatusOK, redacted)
}

func (r *EvaluationRouter) evaluateHandler(c echo.Context) error {
	var req EvaluationRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	sp := req.Spec
	if sp == nil {
		if r.opts.DefaultSpec == nil {
			return apperr.NewValidation("request has no spec and no default spec is configured")
		}
		copied := *r.opts.DefaultSpec
		sp = &copied
	} else {
		if r.opts.DataDir == "" {
			return apperr.NewValidation("request specs are disabled: no data directory is configured")
		}
		if err := sp.Confine(r.opts.DataDir); err != nil {
			return err
		}
		sp.UseConnection(r.opts.PgConn)
	}
	if err := spec.Validate(sp); err != nil {
		return err
	}

	rep, err := r.evaluator.Evaluate(c.Request().Context(), sp)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.latest = rep
	r.mu.Unlock()

	return c.JSON(http.StatusOK, rep)
}

func (r *EvaluationRouter) latestHandler(c echo.Context) error {
	r.mu.RLock()
	rep := r.latest
	r.mu.RUnlock()

	if rep == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no evaluation has run yet")
	}
	return c.JSON(http.StatusOK, rep)
}
