package service

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlainText(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}

	got := s.plainText("<p>Membantu <b>pembukuan</b></p><p>dan R&amp;D</p><script>alert(1)</script>")
	assert.Equal(t, "Membantu pembukuan dan R&D", got)
}

func TestDecodeHitIDs(t *testing.T) {
	ids, err := decodeHitIDs([]byte(`{"hits":[{"id":7},{"id":3}],"query":"intern","limit":20}`))
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 3}, ids)

	_, err = decodeHitIDs([]byte(`not json`))
	assert.Error(t, err)
}

func TestNewMeiliSearchServiceWithoutHost(t *testing.T) {
	assert.Nil(t, NewMeiliSearchService("", "", zap.NewNop()))
}
