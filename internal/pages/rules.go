package pages

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// ruleEnv is what a validation rule sees: the field value under test.
type ruleEnv struct {
	Value any `expr:"value"`
}

// defaultRuleMessage is used when a rule carries no message.
const defaultRuleMessage = "is invalid"

// CompileRule compiles a boolean expression over `value` into a field
// validator. The value is valid when the expression holds; an evaluation
// error counts as invalid. Compile errors wrap ErrInvalidRule.
func CompileRule(expression, message string) (types.Validator, error) {
	prog, err := expr.Compile(expression, expr.Env(ruleEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", types.ErrInvalidRule, expression, err)
	}
	if message == "" {
		message = defaultRuleMessage
	}
	return ruleValidator(prog, message), nil
}

func ruleValidator(prog *vm.Program, message string) types.Validator {
	return func(value any) string {
		out, err := expr.Run(prog, ruleEnv{Value: value})
		if err != nil {
			return message
		}
		if ok, _ := out.(bool); !ok {
			return message
		}
		return ""
	}
}

// mustRule is CompileRule for the built-in pages, whose rules are fixed.
func mustRule(expression, message string) types.Validator {
	v, err := CompileRule(expression, message)
	if err != nil {
		panic(err)
	}
	return v
}
