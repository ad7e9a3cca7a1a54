package status

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Counts holds the number of iterations per status.
type Counts struct {
	Passed  int
	Failed  int
	Pending int
	Skipped int
}

// Count tallies the given statuses.
func Count(statuses []Status) Counts {
	var c Counts
	for _, s := range statuses {
		switch s {
		case Passed:
			c.Passed++
		case Failed:
			c.Failed++
		case Pending:
			c.Pending++
		case Skipped:
			c.Skipped++
		}
	}
	return c
}

// AggregateFunc computes the final status token of a test with several iterations.
// Its result is used verbatim.
type AggregateFunc func(counts Counts) (string, error)

// Aggregate returns the status token of a test with several iterations.
//
// Without a custom function: passed only (pending allowed) is passed, pending only is pending,
// any skipped iteration makes the test skipped, everything else is failed.
// Skipped deliberately outranks failed.
//
// When the custom function fails or returns an empty token, the default token is returned
// together with the error.
func Aggregate(counts Counts, isCloud bool, overrides Overrides, fn AggregateFunc) (string, error) {
	defaultToken := Map(defaultAggregate(counts), isCloud, overrides)
	if fn == nil {
		return defaultToken, nil
	}

	token, err := fn(counts)
	if err != nil {
		return defaultToken, err
	}
	if token == "" {
		return defaultToken, errors.New("custom aggregation returned an empty status")
	}
	return token, nil
}

func defaultAggregate(c Counts) Status {
	if c.Passed > 0 && c.Failed == 0 && c.Skipped == 0 {
		return Passed
	}
	if c.Passed == 0 && c.Failed == 0 && c.Skipped == 0 && c.Pending > 0 {
		return Pending
	}
	if c.Skipped > 0 {
		return Skipped
	}
	return Failed
}

// CompileAggregateExpression compiles an expression over passed, failed, pending and skipped
// into an AggregateFunc, for example: failed > 0 ? "FAIL" : "PASS".
func CompileAggregateExpression(code string) (AggregateFunc, error) {
	program, err := expr.Compile(code, expr.Env(expressionEnv(Counts{})), expr.AsKind(reflect.String))
	if err != nil {
		return nil, fmt.Errorf("invalid aggregate expression: %w", err)
	}

	return func(counts Counts) (string, error) {
		return runAggregateProgram(program, counts)
	}, nil
}

func runAggregateProgram(program *vm.Program, counts Counts) (string, error) {
	out, err := expr.Run(program, expressionEnv(counts))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate aggregate expression: %w", err)
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("aggregate expression returned %T instead of a string", out)
	}
	return s, nil
}

func expressionEnv(c Counts) map[string]interface{} {
	return map[string]interface{}{
		"passed":  c.Passed,
		"failed":  c.Failed,
		"pending": c.Pending,
		"skipped": c.Skipped,
	}
}
