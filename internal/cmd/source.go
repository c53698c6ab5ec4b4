package cmd

import (
	"io"
	"os"
)

// StdinSource is the source name standing for the input stream.
const StdinSource = "-"

// SourceName returns the document named by the first argument, or
// StdinSource when there is none.
func SourceName(helper Helper) string {
	if args := helper.GetArgs(); len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return StdinSource
}

// ReadSource reads the document named by SourceName. A missing input stream
// reads as empty.
func ReadSource(helper Helper) ([]byte, error) {
	name := SourceName(helper)
	if name != StdinSource {
		return os.ReadFile(name)
	}
	in := helper.GetStreams().In
	if in == nil {
		return nil, nil
	}
	return io.ReadAll(in)
}
