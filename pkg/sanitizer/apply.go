package sanitizer

// Compose chains transforms left to right into a single function. The
// processor package builds its multi-step string processors with it.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		for _, fn := range transforms {
			value = fn(value)
		}
		return value
	}
}
