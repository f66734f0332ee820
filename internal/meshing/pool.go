package meshing

import (
	"context"
	"sync"
)

// SlabJob asks a worker to mesh the voxels of Volume with YMin <= y < YMax.
type SlabJob struct {
	Volume Volume
	Slab   int
	YMin   int
	YMax   int
	// Result channel - will be sent the result when done
	ResultChan chan SlabResult
}

// SlabResult carries one slab's local buffer; its indices start at zero.
type SlabResult struct {
	Slab int
	Mesh *MeshBuffer
}

// WorkerPool manages goroutines for slab meshing
type WorkerPool struct {
	jobQueue chan SlabJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan SlabJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// SubmitJobBlocking submits a job and blocks until it's queued or the pool
// shuts down. It reports whether the job was queued.
func (p *WorkerPool) SubmitJobBlocking(job SlabJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := SlabResult{
				Slab: job.Slab,
				Mesh: buildSlab(job.Volume, job.YMin, job.YMax),
			}
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Build meshes v across the pool's workers. The volume must not change until
// Build returns.
func (p *WorkerPool) Build(v Volume) *MeshBuffer {
	_, height := v.Dimensions()
	ranges := slabs(height, p.workers)
	results := make(chan SlabResult, len(ranges))

	submitted := 0
	for i, r := range ranges {
		if !p.SubmitJobBlocking(SlabJob{Volume: v, Slab: i, YMin: r[0], YMax: r[1], ResultChan: results}) {
			break
		}
		submitted++
	}

	parts := make([]*MeshBuffer, len(ranges))
collect:
	for range submitted {
		select {
		case res := <-results:
			parts[res.Slab] = res.Mesh
		case <-p.ctx.Done():
			break collect
		}
	}

	out := NewMeshBuffer(0)
	for i, part := range parts {
		if part == nil {
			// pool shut down before this slab finished; mesh it here
			part = buildSlab(v, ranges[i][0], ranges[i][1])
		}
		out.Append(part)
	}
	return out
}

// Shutdown stops the workers and waits for them to exit.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
