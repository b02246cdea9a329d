package legendalpha

import (
	"golang.org/x/sync/errgroup"
)

// Run transforms every path concurrently, at most Workers() at a time.
// A failing image is logged and recorded in its Result; the others are
// unaffected. Results are returned in input order.
func (t *Transformer) Run(paths []string) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(t.Workers())
	for i, path := range paths {
		g.Go(func() error {
			res, err := t.Transform(path)
			if err != nil {
				Logger().Error("legendalpha: image failed", "file", path, "err", err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}
