package services

// ValidationError means the caller-supplied input is structurally or
// semantically invalid. It is always raised before any network call, so it is
// deterministic and reproducible for a given input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
