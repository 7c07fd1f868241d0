package utils

import (
	"runtime"
	"sync"
)

// Parallelize process in parallel the work function
func Parallelize(nbIterations int, work func(int, int), maxCpus ...int) {

	nbTasks := runtime.NumCPU()
	if len(maxCpus) == 1 {
		nbTasks = maxCpus[0]
	}
	if nbIterations == 0 {
		return
	}
	nbIterationsPerCpus := nbIterations / nbTasks

	// more CPUs than tasks: a CPU will work on exactly one iteration
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbTasks = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := nbIterations - (nbTasks * nbIterationsPerCpus)
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		_start := i*nbIterationsPerCpus + extraTasksOffset
		_end := _start + nbIterationsPerCpus
		if extraTasks > 0 {
			_end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(_start, _end)
			wg.Done()
		}()
	}

	wg.Wait()
}

// ChunkRanges splits [0, nbIterations) into at most nbTasks contiguous
// chunks. Used when the caller needs to drive the goroutines itself.
func ChunkRanges(nbIterations, nbTasks int) [][2]int {
	if nbIterations <= 0 || nbTasks <= 0 {
		return nil
	}
	nbIterationsPerTask := nbIterations / nbTasks
	if nbIterationsPerTask < 1 {
		nbIterationsPerTask = 1
		nbTasks = nbIterations
	}

	extraTasks := nbIterations - (nbTasks * nbIterationsPerTask)
	extraTasksOffset := 0

	ranges := make([][2]int, 0, nbTasks)
	for i := 0; i < nbTasks; i++ {
		start := i*nbIterationsPerTask + extraTasksOffset
		stop := start + nbIterationsPerTask
		if extraTasks > 0 {
			stop++
			extraTasks--
			extraTasksOffset++
		}
		ranges = append(ranges, [2]int{start, stop})
	}
	return ranges
}
