package logger

import (
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/usdm-network/ledger-node/pkg/logger/slogx"
)

func TestErrorAttrReplacer(t *testing.T) {
	t.Run("renders error attrs as their message", func(t *testing.T) {
		attr := errorAttrReplacer(nil, slogx.Error(errors.New("boom")))
		assert.Equal(t, ErrorKey, attr.Key)
		assert.Equal(t, slog.KindString, attr.Value.Kind())
		assert.Equal(t, "boom", attr.Value.String())
	})

	t.Run("renders err attrs too", func(t *testing.T) {
		attr := errorAttrReplacer(nil, slog.Any("err", errors.New("boom")))
		assert.Equal(t, slog.KindString, attr.Value.Kind())
		assert.Equal(t, "boom", attr.Value.String())
	})

	t.Run("leaves other attrs alone", func(t *testing.T) {
		attr := errorAttrReplacer(nil, slog.Int("count", 3))
		assert.Equal(t, slog.KindInt64, attr.Value.Kind())
	})
}

func TestErrorKeyAliasesSlogx(t *testing.T) {
	// slogx.Error and the logger replacers must agree on the key.
	assert.Equal(t, slogx.ErrorKey, ErrorKey)
	assert.Equal(t, ErrorKey, slogx.Error(errors.New("boom")).Key)
}
