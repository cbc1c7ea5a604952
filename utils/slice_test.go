package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Web", "API"}, SplitList("Go, Web , ,API"))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList(" , ,"))
	assert.Equal(t, []string{"solo"}, SplitList("solo"))
}
