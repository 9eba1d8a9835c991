package store

// Storage is one synchronous key/value tier. Reads never fail: a value that
// cannot be read is reported as absent.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
