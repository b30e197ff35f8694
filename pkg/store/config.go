package store

// Config tells the store where entries live. config.Config implements it.
type Config interface {
	BasePath() string
}

// Path is a Config for a fixed directory.
type Path string

// BasePath implements Config.
func (p Path) BasePath() string { return string(p) }
