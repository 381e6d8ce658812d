package inventory

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/rzbill/stockd/internal/alert"
)

// celFilter wraps a compiled CEL program evaluated against alert events
// before they are handed to a sink. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("product_id", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("quantity", cel.IntType),
		cel.Variable("message", cel.StringType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// ValidateFilter reports whether expr compiles. Transports call it before
// committing to a streaming response.
func ValidateFilter(expr string) error {
	_, err := newCELFilter(expr)
	return err
}

// Eval evaluates the compiled expression against one event. Evaluation
// errors count as a non-match.
func (f celFilter) Eval(ev alert.Event) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"product_id": ev.Product.ID,
		"name":       ev.Product.Name,
		"quantity":   ev.Product.Quantity,
		"message":    ev.Message,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
