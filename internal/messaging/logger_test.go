package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/serroba/short-links/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapter(t *testing.T) {
	t.Run("maps levels and fields", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		adapter := messaging.NewZapAdapter(zap.New(core))

		adapter.Info("info msg", watermill.LogFields{"topic": "diagnostics.logged"})
		adapter.Debug("debug msg", nil)
		adapter.Trace("trace msg", nil)
		adapter.Error("error msg", errors.New("boom"), nil)

		entries := logs.All()
		require.Len(t, entries, 4)
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, "diagnostics.logged", entries[0].ContextMap()["topic"])
		assert.Equal(t, zap.DebugLevel, entries[2].Level)
		assert.Equal(t, zap.ErrorLevel, entries[3].Level)
		assert.Equal(t, "boom", entries[3].ContextMap()["error"])
	})

	t.Run("with carries fields forward", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		adapter := messaging.NewZapAdapter(zap.New(core)).With(watermill.LogFields{"consumer": "forwarder"})

		adapter.Info("started", nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "forwarder", logs.All()[0].ContextMap()["consumer"])
	})
}
