package ports

// Watcher monitors a single file (the bot configuration) for changes and
// triggers a reload. Editors often write a file several times per save, so
// the adapter debounces before invoking onChange.
type Watcher interface {
	// Watch starts monitoring path. onChange is called with the absolute
	// path each time the file is written, created, renamed or removed.
	// The callback may be invoked from any goroutine. Returns an error if
	// the parent directory doesn't exist or permissions are insufficient.
	Watch(path string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
