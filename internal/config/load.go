package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads an optional project file from dir, returning zero-valued
// Overrides (and a nil error) if none is present.
func Load(dir string) (Overrides, error) {
	var o Overrides
	data, err := os.ReadFile(dir + string(os.PathSeparator) + ProjectFile)
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return o, err
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, err
	}
	return o, nil
}

// Apply merges non-zero overrides onto the builtin constants, returning
// the effective tape size and deref-stack depth to use for a run.
func (o Overrides) Apply() (tapeSize, derefDepth int, sourceExt string) {
	tapeSize = TapeSize
	derefDepth = DerefStackDepth
	sourceExt = SourceFileExt
	if o.TapeSize > 0 {
		tapeSize = o.TapeSize
	}
	if o.DerefStackDepth > 0 {
		derefDepth = o.DerefStackDepth
	}
	if o.SourceFileExt != "" {
		sourceExt = o.SourceFileExt
	}
	return
}
