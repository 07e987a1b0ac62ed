package cache

// RequestCacher keeps the most recent UI actions per key, newest first.
type RequestCacher interface {
	Write(key string, value []byte) error
	Read(key string) ([]string, error)
}
