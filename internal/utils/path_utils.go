package utils

import (
	"path/filepath"

	"github.com/funvibe/tackc/internal/config"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// SourceDir returns the directory the tackc.yaml lookup starts from.
// Input read from stdin starts in the working directory.
func SourceDir(path string) string {
	if path == "" || path == StdinPath {
		return "."
	}
	return filepath.Dir(path)
}

// ProgramName derives a program name from a file path.
// It takes the base filename and removes any recognized source extension.
func ProgramName(path string) string {
	name := filepath.Base(path)
	return config.TrimSourceExt(name)
}

// OutputPath returns the file next to the source that receives the
// emitted text: prog.tack becomes prog.s, or prog.ir for IR listings.
func OutputPath(sourcePath, emit string) string {
	ext := ".s"
	if emit == config.EmitIR {
		ext = ".ir"
	}
	return filepath.Join(filepath.Dir(sourcePath), ProgramName(sourcePath)+ext)
}
