package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRecordID(t *testing.T) {
	id := GenerateRecordID(PrefixMetric)

	parts := strings.Split(id, "_")
	assert.Len(t, parts, 3)
	assert.Equal(t, PrefixMetric, parts[0])
	assert.Len(t, parts[2], 8)
}

func TestGenerateLedgerID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateLedgerID()
		assert.True(t, strings.HasPrefix(id, "cmp_"))

		_, duplicated := seen[id]
		assert.False(t, duplicated)
		seen[id] = struct{}{}
	}
}
