package types

// Target is a directory tree whose files share one comment dialect.
type Target struct {
	// Name identifies the target on the command line and in the summary (e.g., "frontend").
	Name string `yaml:"name"`

	// Path is the directory to walk, relative to the project root unless absolute (e.g., "src").
	Path string `yaml:"path"`

	// Dialect is the comment syntax of the files ("c_like" or "dash_line").
	Dialect string `yaml:"dialect"`

	// Extensions are the file extensions to process, without the leading dot (e.g., "ts", "tsx").
	Extensions []string `yaml:"extensions"`
}

// ProjectTargets is the root structure of the strip-comments.yaml file.
type ProjectTargets struct {
	// Newline is the line ending written back to files ("lf" or "crlf"). Defaults to "lf".
	Newline string `yaml:"newline"`

	// SkipDirs are directory names never descended into during traversal.
	SkipDirs []string `yaml:"skip_dirs"`

	// Targets is the list of directory trees to process, in order.
	Targets []Target `yaml:"targets"`
}
