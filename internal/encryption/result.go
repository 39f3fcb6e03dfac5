package encryption

// Result represents the outcome of a single encrypt or decrypt operation.
type Result struct {
	// Input file paths
	Inputs []string

	// Output file paths
	Outputs []string

	// Number of bytes transformed
	Size int64
}
