package trace

import "github.com/vrtbl/tracedent/internal/depth"

// Summary describes one pass over a trace dump.
type Summary struct {
	Lines      int
	Entering   int
	Exiting    int
	MaxDepth   int
	MinDepth   int
	FinalDepth int
	Balanced   bool
}

// accumulate folds one classified line into the summary. after is the
// depth once the line's marker has been applied. Balanced is settled
// by the caller once the whole dump has been read.
func (s *Summary) accumulate(kind depth.Kind, after int) {
	s.Lines++
	switch kind {
	case depth.KindEnter:
		s.Entering++
	case depth.KindExit:
		s.Exiting++
	}
	if after > s.MaxDepth {
		s.MaxDepth = after
	}
	if after < s.MinDepth {
		s.MinDepth = after
	}
	s.FinalDepth = after
}
