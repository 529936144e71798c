package analytics

import "context"

// Cache caché de lecturas con claves versionadas. nil = sin caché.
type Cache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error
}
