package riemann

import "fmt"

// ValidationError rejects parameters before anything is computed.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

// DomainError names the point where the function or its antiderivative is
// undefined. Name is "a" or "b" for the bounds and "sample" otherwise.
type DomainError struct {
	Function string
	Name     string
	Point    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s is undefined at %s=%g", e.Function, e.Name, e.Point)
}
