package cli

// Config stores CLI options for a single generation run.
type Config struct {
	Input    string
	Filename string
	Name     string
	Local    bool
	Check    bool
	Strict   bool
	LogLevel string

	ShowVersion bool

	// module is resolved by the runner from Name or the document.
	module string
	global bool
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Filename
}

// ModuleName returns the outer module name for generator layer.
func (c *Config) ModuleName() string {
	return c.module
}

// IsGlobal reports whether the module record is declared global.
func (c *Config) IsGlobal() bool {
	return c.global
}
