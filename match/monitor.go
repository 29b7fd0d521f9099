package match

import "github.com/krambot/krambot/core"

// RankMonitor provides hooks to observe one ranking pass.
// Implement this interface to track gate rejections, dropped candidates and
// final rankings without wiring a metrics stack into the engine.
type RankMonitor interface {
	Start(query core.StoreQuery)
	GateRejected(index int, regionScore float64)
	ZeroDropped(index int)
	Scored(index int, score float64)
	Finish(matches []core.StoreMatch)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.StoreQuery)       {}
func (n *noopMonitor) GateRejected(_ int, _ float64) {}
func (n *noopMonitor) ZeroDropped(_ int)             {}
func (n *noopMonitor) Scored(_ int, _ float64)       {}
func (n *noopMonitor) Finish(_ []core.StoreMatch)    {}
