package panel

import (
	"context"
	"sync"
)

// forEach calls fn(i) for i in [0, jobs) on at most workers goroutines.
// fn must only write to state owned by index i. Feeding stops when ctx is
// done; jobs already handed out still finish.
func forEach(ctx context.Context, workers, jobs int, fn func(i int)) error {
	if jobs == 0 {
		return ctx.Err()
	}
	if workers > jobs {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}

	next := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}

	var err error
feed:
	for i := 0; i < jobs; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case next <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(next)
	wg.Wait()
	return err
}
