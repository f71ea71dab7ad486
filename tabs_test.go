package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwangaza/board/internal/rolegate"
)

// The tab router and the role-gate module table must describe the same set of
// modules: a renderer without a gate entry is unreachable, and a gate entry
// without a renderer 404s for every role allowed to see it.
func TestTabRenderersMatchModuleTable(t *testing.T) {
	modules := rolegate.Modules()
	assert.Len(t, tabRenderers, len(modules))
	for _, m := range modules {
		assert.Contains(t, tabRenderers, m, "module %s has no renderer", m)
	}
	for id := range tabRenderers {
		assert.True(t, rolegate.KnownModule(id), "renderer %s is not a registered module", id)
	}
}
