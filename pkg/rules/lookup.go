package rules

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// Checker answers whether a value is already stored under a target such as
// "users.email". Implementations live in pkg/lookup.
type Checker interface {
	Exists(ctx context.Context, target string, value any) (bool, error)
}

// Lookup is the "db" family backed by an external store. Checker errors abort
// validation instead of failing the field.
func Lookup(checker Checker) *Family {
	target := []params.ArgType{params.ArgString}
	return NewFamily("db", "exists").MustRegister(
		&Func{
			Name:      "exists",
			Aliases:   []string{"exists"},
			ParamType: params.ParamSingle,
			ArgTypes:  target,
			Steps: []Step{CheckErr(func(in Input) (bool, error) {
				return exists(checker, in)
			}, "the selected @{name} is invalid")},
		},
		&Func{
			Name:      "unique",
			Aliases:   []string{"unique"},
			ParamType: params.ParamSingle,
			ArgTypes:  target,
			Steps: []Step{CheckErr(func(in Input) (bool, error) {
				found, err := exists(checker, in)
				return !found, err
			}, "@{name} has already been taken")},
		},
	)
}

func exists(checker Checker, in Input) (bool, error) {
	if checker == nil {
		return false, ErrLookupUnavailable
	}
	ctx := in.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	target := predicate.ToString(in.Param)
	found, err := checker.Exists(ctx, target, in.Value)
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", target, err)
	}
	return found, nil
}
