package debugui

// FrameHistory is a fixed-size ring of frame times in milliseconds, laid out
// for imgui.PlotLines.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	if frames <= 0 {
		frames = 1
	}
	return &FrameHistory{samples: make([]float32, frames)}
}

func (h *FrameHistory) Push(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average returns the mean of the recorded samples, zero when empty.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

func (h *FrameHistory) Samples() []float32 {
	return h.samples
}
