package profiler

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stats is one profiling window.
type Stats struct {
	FPS          float64
	Frames       int
	HeapMB       float64
	SysMB        float64
	AllocRateMBs float64
	NumGC        uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
}

// Profiler tracks frame rate and memory statistics and reports them through zap once per interval.
// Tick may be called from the frame goroutine while Last is read elsewhere.
type Profiler struct {
	mu *sync.Mutex

	logger   *zap.Logger
	now      func() time.Time
	interval time.Duration

	frameCount     int
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerBuilderOption is a functional option applied to the profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the logger the stats are reported to.
func WithLogger(logger *zap.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often stats are reported. Non-positive values are ignored.
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProfiler creates a new Profiler. The interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:       &sync.Mutex{},
		logger:   zap.NewNop(),
		now:      time.Now,
		interval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	p.lastTotalAlloc = p.readMemStats().TotalAlloc
	return p
}

// Tick records one frame. Once the interval has elapsed it samples memory, logs the window and starts a new one.
//
// Returns:
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.interval {
		return false
	}

	ms := p.readMemStats()
	s := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		Frames:       p.frameCount,
		HeapMB:       float64(ms.Alloc) / 1024 / 1024,
		SysMB:        float64(ms.Sys) / 1024 / 1024,
		AllocRateMBs: float64(ms.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:        ms.NumGC,
	}
	if ms.NumGC > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		s.LastPauseUs = ms.PauseNs[(ms.NumGC-1)%256] / 1000
		start := p.lastGCCount
		if ms.NumGC-start > 256 {
			start = ms.NumGC - 256
		}
		for i := start; i < ms.NumGC; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, ms.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("frame stats",
		zap.Float64("fps", s.FPS),
		zap.Int("frames", s.Frames),
		zap.Float64("heap_mb", s.HeapMB),
		zap.Float64("alloc_rate_mb_s", s.AllocRateMBs),
		zap.Uint32("gc", s.NumGC),
		zap.Uint64("gc_last_pause_us", s.LastPauseUs),
		zap.Uint64("gc_max_pause_us", s.MaxPauseUs),
		zap.Float64("sys_mb", s.SysMB),
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = current
	p.lastGCCount = ms.NumGC
	p.lastTotalAlloc = ms.TotalAlloc
	return true
}

// Last returns the most recently reported stats.
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Profiler) readMemStats() *runtime.MemStats {
	runtime.ReadMemStats(&p.memStats)
	return &p.memStats
}
