package repository

// Repository describes the repository containing an analyzed Makefile tree.
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath string // Absolute path to the project root directory
	Type     string // Type of project (go, javascript, java, git, unknown)
	Name     string // Name of the project (extracted from config files)
}
