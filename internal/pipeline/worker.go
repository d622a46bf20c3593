// Package pipeline simulates the AI transcription backend: uploaded
// videos are walked through the staged pipeline on a worker pool and come
// out the other side with a transcript and suggested highlights attached.
package pipeline

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Job is one unit of pipeline work.
type Job interface {
	ID() string
	Execute() error
}

// worker pulls jobs from the dispatcher's shared pool.
type worker struct {
	id         int
	workerPool chan chan Job
	jobChannel chan Job
	quit       chan struct{}
	wg         *sync.WaitGroup
	logger     *logrus.Logger
}

func newWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, logger *logrus.Logger) worker {
	return worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan Job),
		quit:       make(chan struct{}),
		wg:         wg,
		logger:     logger,
	}
}

func (w worker) start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			// Register this worker's channel back into the shared pool.
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				log := w.logger.WithFields(logrus.Fields{"worker": w.id, "job_id": job.ID()})
				log.Info("Pipeline job started")
				if err := job.Execute(); err != nil {
					log.WithError(err).Error("Pipeline job failed")
				} else {
					log.Info("Pipeline job finished")
				}
			case <-w.quit:
				return
			}
		}
	}()
}

func (w worker) stop() {
	close(w.quit)
}

// Dispatcher fans pipeline jobs out to a fixed pool of workers.
type Dispatcher struct {
	workerPool chan chan Job
	jobQueue   chan Job
	workers    []worker
	wg         sync.WaitGroup
	quit       chan struct{}
	logger     *logrus.Logger
}

// NewDispatcher sizes the pool. Run must be called before Submit.
func NewDispatcher(maxWorkers, queueSize int, logger *logrus.Logger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Dispatcher{
		workerPool: make(chan chan Job, maxWorkers),
		jobQueue:   make(chan Job, queueSize),
		workers:    make([]worker, 0, maxWorkers),
		quit:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the workers and the dispatch loop.
func (d *Dispatcher) Run() {
	for i := 1; i <= cap(d.workerPool); i++ {
		w := newWorker(i, d.workerPool, &d.wg, d.logger)
		d.workers = append(d.workers, w)
		w.start()
	}
	go d.dispatch()
	d.logger.Infof("Pipeline dispatcher running with %d workers", len(d.workers))
}

// Submit enqueues a job, blocking once the queue is full.
func (d *Dispatcher) Submit(job Job) {
	d.jobQueue <- job
}

// Stop shuts the dispatch loop and workers down and waits for in-flight
// jobs to finish.
func (d *Dispatcher) Stop() {
	close(d.quit)
	for _, w := range d.workers {
		w.stop()
	}
	d.wg.Wait()
}

func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.jobQueue:
			select {
			case jobChannel := <-d.workerPool:
				jobChannel <- job
			case <-d.quit:
				return
			}
		case <-d.quit:
			return
		}
	}
}
