package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// CheckFunc reports an unhealthy dependency as an error.
type CheckFunc func(ctx context.Context) error

// FuncHealthChecker is healthy when every check passes.
type FuncHealthChecker struct {
	checks []CheckFunc
}

func NewFuncHealthChecker(checks ...CheckFunc) *FuncHealthChecker {
	return &FuncHealthChecker{checks: checks}
}

func (hc *FuncHealthChecker) Healthy(ctx context.Context) bool {
	for _, check := range hc.checks {
		if err := check(ctx); err != nil {
			return false
		}
	}
	return true
}
