package core

// RepoConfig represents the structure of the .build-herald.yml file. Any
// field left empty in the file keeps the value from the environment
// configuration.
type RepoConfig struct {
	// Override for the compilation level passed to the compile service.
	// Example: "ADVANCED_OPTIMIZATIONS"
	CompilationLevel string `yaml:"compilation_level"`

	// Override for the target language level.
	// Example: "ECMASCRIPT_2020"
	LanguageLevel string `yaml:"language_level"`

	// Override for the source file submitted to the compile service,
	// relative to the repository root.
	SourcePath string `yaml:"source_path"`

	// Image shown in the header of failure notifications.
	NotifyImageURL string `yaml:"notify_image_url"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{}
}
