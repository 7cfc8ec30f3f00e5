package types

// ConverterConfig holds settings for the conversion orchestrator. It is
// passed explicitly at construction; there is no process-wide default state.
type ConverterConfig struct {
	// Path is the converter location: an absolute path or a bare command
	// name resolved on PATH. Empty means auto-detect from the platform
	// candidate list.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// OutputDir is the default directory for converted files. Empty means
	// each output lands next to its input.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}

// JournalConfig holds settings for the conversion journal.
type JournalConfig struct {
	// Dir is the directory holding the journal database.
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns off journal recording entirely.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}
