package errx

// Error codes shared by the grid, codec and generator packages.
const (
	// CodeBounds marks grid access outside [0,width)×[0,height).
	CodeBounds Code = "OUT_OF_BOUNDS"
	// CodeFormat marks a cell file whose size or content does not match the
	// expected layout.
	CodeFormat Code = "BAD_FORMAT"
	// CodeIO marks a file that could not be opened, read or written.
	CodeIO Code = "IO_FAILURE"
	// CodeInvalidConfig marks unusable scene, simulation or CLI parameters.
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// Sentinels for errors.Is. Derive contextual errors with With/WithCause.
var (
	ErrBounds        = NewInput(CodeBounds, "coordinates out of bounds")
	ErrFormat        = NewInput(CodeFormat, "malformed cell data")
	ErrIO            = NewSys(CodeIO, "file access failed")
	ErrInvalidConfig = NewInput(CodeInvalidConfig, "invalid configuration")
)
