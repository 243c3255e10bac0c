// Package cleaner provides the interface shared by text cleaners.
// Cleaners take the raw text of an HTML document and return a repaired copy;
// they never touch the filesystem.
package cleaner

// Cleaner transforms HTML text into a cleaned version of itself.
type Cleaner interface {
	// Clean returns the transformed document. Implementations that find
	// nothing to do return the input unchanged.
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
