package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethods(t *testing.T) {
	methods := Methods()
	require.Len(t, methods, 4)

	kinds := make(map[Kind]bool)
	ids := make(map[string]bool)
	for _, m := range methods {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.DisplayName)
		assert.NotEmpty(t, m.Icon)
		assert.NotEmpty(t, m.Description)
		assert.False(t, ids[m.ID], "duplicate method id %s", m.ID)
		ids[m.ID] = true
		kinds[m.Kind] = true
	}

	for _, k := range []Kind{KindCard, KindUPI, KindWallet, KindNetBanking} {
		assert.True(t, kinds[k], "missing kind %s", k)
	}
}

func TestMethods_ReturnsCopy(t *testing.T) {
	a := Methods()
	a[0].DisplayName = "tampered"

	b := Methods()
	assert.NotEqual(t, "tampered", b[0].DisplayName)
}

func TestMethodByID(t *testing.T) {
	t.Run("happy: known id", func(t *testing.T) {
		m, ok := MethodByID("upi")
		require.True(t, ok)
		assert.Equal(t, KindUPI, m.Kind)
	})

	t.Run("bad: unknown id", func(t *testing.T) {
		_, ok := MethodByID("cheque")
		assert.False(t, ok)
	})
}
