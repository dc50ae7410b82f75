package percent

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClamping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.core")
	defer teardown()
	//
	assert.Equal(t, Percent(0), FromFloat(-3))
	assert.Equal(t, Percent(100), FromFloat(250))
	assert.Equal(t, Percent(0), FromFloat(math.NaN()))
	assert.Equal(t, Percent(100), FromFloat(math.Inf(1)))
	assert.Equal(t, Percent(67), FromFloat(66.6667))
	assert.Equal(t, "42%", Percent(42).String())
}

func TestOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "winietki.core")
	defer teardown()
	//
	assert.Equal(t, Percent(33), Of(1, 3))
	assert.Equal(t, Percent(67), Of(2, 3))
	assert.Equal(t, Percent(100), Of(3, 3))
	assert.Equal(t, Percent(100), Of(0, 0))
	assert.Equal(t, Percent(50), Of(1, 2))
	var last Percent
	for i := 0; i < 7; i++ {
		p := Of(i+1, 7)
		assert.GreaterOrEqual(t, int(p), int(last))
		last = p
	}
	assert.Equal(t, Percent(100), last)
}
