package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farmflow/internal/core"
)

func TestFarmName(t *testing.T) {
	farms := []core.Farm{{ID: 1, Name: "Green Valley"}, {ID: 2, Name: "Sunrise Acres"}}
	assert.Equal(t, "Sunrise Acres", FarmName(farms, "2"))
	assert.Equal(t, UnknownFarm, FarmName(farms, "9"))
	assert.Equal(t, UnknownFarm, FarmName(nil, "1"))
	assert.Equal(t, UnknownFarm, FarmName(farms, ""))
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 12 ")
	assert.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}
