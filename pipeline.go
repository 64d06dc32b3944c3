package terrainmap

import (
	"context"
	"errors"
	"sync"

	"github.com/bodgit/terrainmap/terrain"
)

func (c *Converter) generateChunks(ctx context.Context, n int) (<-chan int, <-chan error, error) {
	out := make(chan int)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i := 0; i < n; i++ {
			select {
			case out <- i:
			case <-ctx.Done():
				errc <- errors.New("generate cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) chunkWorker(ctx context.Context, src terrain.Source, grid terrain.Grid, in <-chan int) (<-chan *terrain.Chunk, <-chan error, error) {
	out := make(chan *terrain.Chunk)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i := range in {
			select {
			case out <- terrain.EncodeChunk(src, grid, i):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) chunkWriter(ctx context.Context, w *terrain.Writer, in <-chan *terrain.Chunk) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)

		// Workers finish out of order so hold onto any chunk that
		// arrives early until its predecessors have been written
		pending := make(map[int]*terrain.Chunk)
		next := 0

		for chunk := range in {
			pending[chunk.Index] = chunk
			for {
				chunk, ok := pending[next]
				if !ok {
					break
				}
				if err := w.WriteChunk(chunk); err != nil {
					errc <- err
					return
				}
				delete(pending, next)
				next++
			}
		}

		if ctx.Err() != nil {
			return
		}

		errc <- w.Close()
	}()
	return errc, nil
}

func (c *Converter) encodeChunks(src terrain.Source, grid terrain.Grid, w *terrain.Writer) error {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	indices, errc, err := c.generateChunks(ctx, grid.Len())
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := c.workers
	if workers < 1 {
		workers = 1
	}

	var chunkList []<-chan *terrain.Chunk
	for i := 0; i < workers; i++ {
		chunks, errc, err := c.chunkWorker(ctx, src, grid, indices)
		if err != nil {
			return err
		}
		chunkList = append(chunkList, chunks)
		errcList = append(errcList, errc)
	}

	errc, err = c.chunkWriter(ctx, w, mergeChunks(ctx, chunkList...))
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	return waitForPipeline(errcList...)
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func mergeChunks(ctx context.Context, cs ...<-chan *terrain.Chunk) <-chan *terrain.Chunk {
	var wg sync.WaitGroup
	out := make(chan *terrain.Chunk)
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan *terrain.Chunk) {
			defer wg.Done()
			for n := range c {
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
