package report

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/Koagonzalo/XcodeGen/pkg/validate"
)

// filterEnv is the environment a filter expression is evaluated against.
type filterEnv struct {
	Kind      string
	Phase     string
	Path      string
	Target    string
	Scheme    string
	Config    string
	Reference string
	File      string
	Message   string
	Severity  string
}

func envFor(e *validate.ValidationError) filterEnv {
	return filterEnv{
		Kind:      string(e.Kind),
		Phase:     e.Phase,
		Path:      e.Path,
		Target:    e.Target,
		Scheme:    e.Scheme,
		Config:    e.Config,
		Reference: e.Reference,
		File:      e.File,
		Message:   e.Message,
		Severity:  e.Severity,
	}
}

// Filter keeps the violations for which the boolean expression holds,
// e.g. `Target == "App" && Kind != "invalidTargetSource"`. An empty
// expression keeps everything.
func Filter(errs []*validate.ValidationError, where string) ([]*validate.ValidationError, error) {
	if where == "" {
		return errs, nil
	}
	program, err := compileFilter(where)
	if err != nil {
		return nil, err
	}
	var kept []*validate.ValidationError
	for _, e := range errs {
		out, err := expr.Run(program, envFor(e))
		if err != nil {
			return nil, fmt.Errorf("eval filter %q: %w", where, err)
		}
		if ok, _ := out.(bool); ok {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func compileFilter(where string) (*vm.Program, error) {
	program, err := expr.Compile(where, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", where, err)
	}
	return program, nil
}
