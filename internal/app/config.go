package app

// Config holds runtime configuration for the analyzer and its HTTP front
// end. Everything is an explicit value handed to the components that need
// it; there is no package-level state.
type Config struct {
	// One-shot analysis
	InputPath  string
	InputName  string
	ReportPath string

	// Server
	Listen    string
	UploadDir string
	StaticDir string

	// LLM (optional privacy note)
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	Verbose bool
}

// Normalize fills in defaults for values the flags and config file left
// empty.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = ":3000"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
}
