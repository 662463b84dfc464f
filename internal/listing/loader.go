package listing

import (
	"context"
	"sync/atomic"

	"github.com/riya-n/step204-2020/internal/models"
)

// Loader serializes overlapping listings fetches for one page. Each Load
// takes a generation number; a result is reported stale when a newer Load
// was issued while it was in flight, so a slow early response can never
// overwrite a later query's result.
type Loader struct {
	client Client
	gen    atomic.Uint64
}

func NewLoader(client Client) *Loader {
	return &Loader{client: client}
}

// Load fetches a page of listings. When stale is true the result (and any
// error) belongs to an outdated query and must be discarded.
func (l *Loader) Load(ctx context.Context, q Query) (page *models.JobPage, stale bool, err error) {
	gen := l.gen.Add(1)

	page, err = l.client.FetchListings(ctx, q)

	if l.gen.Load() != gen {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return page, false, nil
}
