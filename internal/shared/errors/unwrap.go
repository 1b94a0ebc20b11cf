package errors

import "errors"

// RootMessage returns the innermost error text. Application layers wrap
// domain errors as fmt.Errorf("%w: %w", kind, cause), so the root is the
// rule that actually failed.
func RootMessage(err error) string {
	if err == nil {
		return ""
	}
	for {
		var next error
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			errs := joined.Unwrap()
			if len(errs) == 0 {
				break
			}
			next = errs[len(errs)-1]
		} else {
			next = errors.Unwrap(err)
		}
		if next == nil {
			break
		}
		err = next
	}
	return err.Error()
}
