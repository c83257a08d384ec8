package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)

	ctx := WithRequestID(context.Background(), "req-1")

	logger := Component("reviewapi")
	logger.Info().Ctx(ctx).Msg("submitted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "reviewapi", entry["cmp"])
	assert.Equal(t, "submitted", entry["message"])
	assert.Equal(t, "req-1", entry["request_id"])
}
