package setflag_test

import (
	"flag"
	"io"
	"testing"

	"github.com/amonks/journey/setflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFlag(t *testing.T) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	statuses := setflag.New("ok", "partial", "failed")
	fs.Var(statuses, "status", "")

	require.NoError(t, fs.Parse([]string{"-status", "partial, failed", "-status", "ok"}))
	assert.Equal(t, []string{"failed", "ok", "partial"}, statuses.List())
	assert.Equal(t, "failed, ok, partial", statuses.String())
}

func TestSetFlagUnset(t *testing.T) {
	assert.Empty(t, setflag.New("ok").List())
}

func TestSetFlagRejectsUnknown(t *testing.T) {
	statuses := setflag.New("ok", "partial", "failed")
	assert.ErrorContains(t, statuses.Set("ok,great"), "unsupported value 'great'")
}
