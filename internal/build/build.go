package build

// Info describes the binary being run. Fields are set from linker flags in
// main.
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}

type Key struct{}

// InfoKey stores the *Info on a command context.
var InfoKey = Key{}
