package history

// Store abstracts generation history storage. FileStore keeps a flat
// text log; SQLiteStore keeps the same data in two tables.
type Store interface {
	// Write
	Log(run Run) error

	// Read
	Runs(limit int) ([]Run, error) // most recent runs in chronological order, 0 = all
	ReadContent() (string, error)  // runs rendered in the flat log format

	// Maintenance
	Clean(days int) (int, error) // remove runs older than days, return removed count
	Clear() error                // delete all data

	// Metadata
	Path() string
	Close() error
}
