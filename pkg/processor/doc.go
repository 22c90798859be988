// Package processor holds the value transforms applied before and after
// validation: trimming, case conversion, type casting and numeric rounding.
//
// Processors never fail a validation. When a transform errors or panics the
// original value is kept and the failure is reported as ErrTransformFailed so
// callers can log it:
//
//	out, err := processor.Cast().Process("integer", "42", nil)
//	// out == int64(42), err == nil
//
//	out, err = processor.Cast().Process("integer", "abc", nil)
//	// out == "abc", errors.Is(err, processor.ErrTransformFailed)
package processor
