package rules

import (
	"strings"
	"time"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

type temporal[T any] interface {
	Compare(other T) int
}

// Date is the family of calendar date rules (YYYY-MM-DD).
func Date() *Family {
	f := temporalFamily("date", "a valid date", params.ArgDate, toDate)
	return f.MustRegister(
		&Func{
			Name: "past",
			Steps: []Step{CheckValue(func(v any) bool {
				d, ok := toDate(v)
				return ok && d.Compare(today()) < 0
			}, "@{name} must be a date in the past")},
		},
		&Func{
			Name: "future",
			Steps: []Step{CheckValue(func(v any) bool {
				d, ok := toDate(v)
				return ok && d.Compare(today()) > 0
			}, "@{name} must be a date in the future")},
		},
		&Func{
			Name: "weekday",
			Steps: []Step{CheckValue(func(v any) bool {
				d, ok := toDate(v)
				return ok && !isWeekend(d)
			}, "@{name} must be a weekday")},
		},
		&Func{
			Name: "weekend",
			Steps: []Step{CheckValue(func(v any) bool {
				d, ok := toDate(v)
				return ok && isWeekend(d)
			}, "@{name} must be a weekend day")},
		},
	)
}

// Time is the family of time-of-day rules (HH:MM[:SS]).
func Time() *Family {
	return temporalFamily("time", "a valid time", params.ArgTime, toTime)
}

// DateTime is the family of date time rules (YYYY-MM-DDTHH:MM[:SS]).
func DateTime() *Family {
	return temporalFamily("datetime", "a valid date and time", params.ArgDateTime, toDateTime)
}

func temporalFamily[T temporal[T]](typ, noun string, arg params.ArgType, parse func(any) (T, bool)) *Family {
	args := []params.ArgType{arg}
	cmp := func(want func(int) bool) func(Input) bool {
		return func(in Input) bool {
			v, ok := parse(in.Value)
			if !ok {
				return false
			}
			p, ok := parse(in.Param)
			if !ok {
				return false
			}
			return want(v.Compare(p))
		}
	}

	return NewFamily(typ, typ).MustRegister(
		&Func{
			Name:    typ,
			Aliases: []string{typ},
			Steps: []Step{CheckValue(func(v any) bool {
				_, ok := parse(v)
				return ok
			}, "@{name} must be "+noun)},
		},
		&Func{
			Name:      "min",
			ParamType: params.ParamSingle,
			ArgTypes:  args,
			Steps:     []Step{Check(cmp(func(c int) bool { return c >= 0 }), "@{name} must be on or after @{param}")},
		},
		&Func{
			Name:      "max",
			ParamType: params.ParamSingle,
			ArgTypes:  args,
			Steps:     []Step{Check(cmp(func(c int) bool { return c <= 0 }), "@{name} must be on or before @{param}")},
		},
		&Func{
			Name:      "between",
			ParamType: params.ParamRange,
			ArgTypes:  args,
			Steps: []Step{Check(func(in Input) bool {
				b, ok := bounds(in.Param)
				if !ok {
					return false
				}
				v, vok := parse(in.Value)
				lo, lok := parse(b.Min)
				hi, hok := parse(b.Max)
				return vok && lok && hok && v.Compare(lo) >= 0 && v.Compare(hi) <= 0
			}, "@{name} must be between @{param.min} and @{param.max}")},
		},
		&Func{
			Name:      "equals",
			ParamType: params.ParamSingle,
			ArgTypes:  args,
			Steps:     []Step{Check(cmp(func(c int) bool { return c == 0 }), "@{name} must be @{param}")},
		},
		&Func{
			Name:      "notEquals",
			ParamType: params.ParamSingle,
			ArgTypes:  args,
			Steps:     []Step{Check(cmp(func(c int) bool { return c != 0 }), "@{name} must not be @{param}")},
		},
		&Func{
			Name:      "before",
			ParamType: params.ParamSingle,
			ArgTypes:  args,
			Steps:     []Step{Check(cmp(func(c int) bool { return c < 0 }), "@{name} must be before @{param}")},
		},
		&Func{
			Name:      "after",
			ParamType: params.ParamSingle,
			ArgTypes:  args,
			Steps:     []Step{Check(cmp(func(c int) bool { return c > 0 }), "@{name} must be after @{param}")},
		},
	)
}

func toDate(v any) (params.Date, bool) {
	switch d := v.(type) {
	case params.Date:
		return d, true
	case params.DateTime:
		return d.Date, true
	case time.Time:
		return params.Date{Year: d.Year(), Month: int(d.Month()), Day: d.Day()}, true
	}
	d, err := params.ExtractDate(strings.TrimSpace(predicate.ToString(v)))
	return d, err == nil
}

func toTime(v any) (params.Time, bool) {
	switch t := v.(type) {
	case params.Time:
		return t, true
	case time.Time:
		return params.Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), HasSeconds: true}, true
	}
	t, err := params.ExtractTime(strings.TrimSpace(predicate.ToString(v)))
	return t, err == nil
}

func toDateTime(v any) (params.DateTime, bool) {
	switch dt := v.(type) {
	case params.DateTime:
		return dt, true
	case time.Time:
		d, _ := toDate(dt)
		t, _ := toTime(dt)
		return params.DateTime{Date: d, Time: t}, true
	}
	dt, err := params.ExtractDateTime(strings.TrimSpace(predicate.ToString(v)))
	return dt, err == nil
}

func today() params.Date {
	d, _ := toDate(time.Now().UTC())
	return d
}

func isWeekend(d params.Date) bool {
	wd := d.Time().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
