// Package config holds the compiler's fixed tape layout and version
// constants, plus optional project-file overrides.
package config

// Version is the current tapec version.
var Version = "0.1.0"

const SourceFileExt = ".tp"

// SourceFileExtensions are all recognized surface-syntax source extensions.
var SourceFileExtensions = []string{".tp", ".tape", ".harbor"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Reserved tape cells. Cell 0 is always the stack pointer; the assembler's
// To/From cursor moves always return here between operations.
const (
	SP   = 0
	TMP0 = 1
	TMP1 = 2
	FP   = 3
	TMP2 = 4
	TMP3 = 5
	TMP4 = 6
	TMP5 = 7
	R0   = 8
	R1   = 9
	R2   = 10
	R3   = 11
	R4   = 12
	R5   = 13

	TotalRegisters = 14
)

// TapeSize is the number of cells the emitted C runtime allocates for the
// tape. The data stack grows upward from cell TotalRegisters.
const TapeSize = 30000

// DerefStackDepth bounds how deeply nested '*'/'&' reference tracking may
// go in the emitted LIR program's runtime deref stack.
const DerefStackDepth = 256

// IsTestMode marks a test-oriented run. Nothing in this module assigns
// it, so it stays false.
var IsTestMode = false

// ProjectFile is the optional YAML project file, looked up in the input
// file's directory after flags are parsed. No CLI flag overlaps with the
// settings it holds.
const ProjectFile = "tapec.yaml"

// Overrides holds values loadable from ProjectFile. Zero values mean
// "use the builtin constant".
type Overrides struct {
	TapeSize        int    `yaml:"tape_size"`
	DerefStackDepth int    `yaml:"deref_stack_depth"`
	SourceFileExt   string `yaml:"source_file_ext"`
}
