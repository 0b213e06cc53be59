package util

// Contains reports whether elem occurs in slice.
func Contains[T comparable](slice []T, elem T) bool {
	for _, x := range slice {
		if x == elem {
			return true
		}
	}

	return false
}

// Map builds a new slice by applying f to every element of slice.
func Map[T, R any](slice []T, f func(T) R) []R {
	out := make([]R, len(slice))

	for i, elem := range slice {
		out[i] = f(elem)
	}

	return out
}

// Filter collects the elements of slice for which pred holds, in order.
func Filter[T any](slice []T, pred func(T) bool) []T {
	var out []T

	for _, elem := range slice {
		if pred(elem) {
			out = append(out, elem)
		}
	}

	return out
}
