package world

type StatsBucket struct {
	Deposits      int     `json:"deposits"`
	FoodDeposited float64 `json:"food_deposited"`
	FoodDrawn     float64 `json:"food_drawn"`
	Deaths        int     `json:"deaths"`
	TrailsCreated int     `json:"trails_created"`
	TrailsExpired int     `json:"trails_expired"`
}

// WorldStats keeps a rolling window of per-bucket counters.
type WorldStats struct {
	bucketTicks uint64
	windowTicks uint64

	buckets []StatsBucket
	curIdx  int
	curBase uint64 // start tick (inclusive) of current bucket
}

func NewWorldStats(bucketTicks, windowTicks uint64) *WorldStats {
	if bucketTicks <= 0 {
		bucketTicks = 100
	}
	if windowTicks < bucketTicks {
		windowTicks = bucketTicks
	}
	n := int(windowTicks / bucketTicks)
	if n < 1 {
		n = 1
	}
	return &WorldStats{
		bucketTicks: bucketTicks,
		windowTicks: uint64(n) * bucketTicks,
		buckets:     make([]StatsBucket, n),
	}
}

func (s *WorldStats) rotate(nowTick uint64) {
	if s == nil {
		return
	}
	// Move forward until nowTick is in [curBase, curBase+bucketTicks).
	for nowTick >= s.curBase+s.bucketTicks {
		s.curIdx = (s.curIdx + 1) % len(s.buckets)
		s.buckets[s.curIdx] = StatsBucket{}
		s.curBase += s.bucketTicks
	}
}

// Observe folds one tick's log entry into the current bucket.
func (s *WorldStats) Observe(nowTick uint64, e TickLogEntry) {
	if s == nil {
		return
	}
	s.rotate(nowTick)
	b := &s.buckets[s.curIdx]
	for _, d := range e.Deposits {
		b.Deposits++
		b.FoodDeposited += d.Amount
	}
	b.FoodDrawn += e.FoodDrawn
	b.Deaths += len(e.Deaths)
	b.TrailsCreated += e.TrailsCreated
	b.TrailsExpired += e.TrailsExpired
}

func (s *WorldStats) WindowTicks() uint64 {
	if s == nil {
		return 0
	}
	return s.windowTicks
}

func (s *WorldStats) Summarize(nowTick uint64) StatsBucket {
	if s == nil {
		return StatsBucket{}
	}
	s.rotate(nowTick)
	var out StatsBucket
	for _, b := range s.buckets {
		out.Deposits += b.Deposits
		out.FoodDeposited += b.FoodDeposited
		out.FoodDrawn += b.FoodDrawn
		out.Deaths += b.Deaths
		out.TrailsCreated += b.TrailsCreated
		out.TrailsExpired += b.TrailsExpired
	}
	return out
}
