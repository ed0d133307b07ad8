package engine

// Points returns the score for clearing n rows at once on level.
func Points(n, level int) int {
	if n < 1 {
		return 0
	}
	return n*30*level + (1<<(n-1))*level
}
