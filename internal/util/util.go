package util

// DefaultValue returns the zero value of T.
func DefaultValue[T any]() T {
	var ret T
	return ret
}
