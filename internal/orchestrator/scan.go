package orchestrator

import (
	"context"
	"runtime"
	"sync"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/parser/marker"
	"golang.org/x/sync/errgroup"
)

// scan reads the type annotations of defs concurrently, bounded by the number of
// CPUs, and returns the marked types in the order of defs. Marked types whose
// annotations are malformed are returned as failures; the annotations of
// unmarked types are not read.
func (s *Service) scan(ctx context.Context, defs []*domain.TypeSpecDef) ([]*domain.TypeSpecDef, []*Failure, error) {
	var (
		mu       sync.Mutex
		marked   = make([]bool, len(defs))
		failures []*Failure
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, def := range defs {
		if def == nil || !marker.IsMarked(def.Doc) {
			continue
		}
		i, def := i, def

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := marker.ParseType(def.Doc)
			if err != nil {
				mu.Lock()
				failures = append(failures, &Failure{Type: def.TypeName(), Err: err})
				mu.Unlock()
				return nil
			}
			// each goroutine owns its slot
			marked[i] = info.Marked
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var out []*domain.TypeSpecDef
	for i, def := range defs {
		if marked[i] {
			out = append(out, def)
		}
	}
	return out, failures, nil
}
