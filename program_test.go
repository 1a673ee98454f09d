package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"pgbot/sources/framework/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandPrintsStructure(t *testing.T) {
	var out bytes.Buffer
	cmd := &parseCmd{Input: `say "hi there" n=2`, Fallback: "help"}

	require.NoError(t, cmd.Run(strings.NewReader(""), &out))
	assert.True(t, strings.HasPrefix(out.String(), "command: say\n"), out.String())
	assert.Contains(t, out.String(), "n: ")
}

func TestParseCommandReadsStdin(t *testing.T) {
	var out bytes.Buffer
	cmd := &parseCmd{Stdin: true, Fallback: "help"}

	require.NoError(t, cmd.Run(strings.NewReader("ping now\n"), &out))
	assert.True(t, strings.HasPrefix(out.String(), "command: ping\n"), out.String())

	err := (&parseCmd{Input: "ping", Stdin: true, Fallback: "help"}).Run(strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

type unreadable struct{}

func (unreadable) Read([]byte) (int, error) {
	return 0, errors.New("stdin must not be read")
}

func TestParseCommandEmptyArgument(t *testing.T) {
	var out bytes.Buffer
	cmd := &parseCmd{Input: "", Fallback: "usage"}

	require.NoError(t, cmd.Run(unreadable{}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "command: usage\n"), out.String())
}

func TestParseCommandSource(t *testing.T) {
	var out bytes.Buffer
	cmd := &parseCmd{Input: "say   hello", Fallback: "help", Source: true}

	require.NoError(t, cmd.Run(strings.NewReader(""), &out))
	assert.Equal(t, "say hello\n", out.String())
}

func TestParseCommandError(t *testing.T) {
	cmd := &parseCmd{Input: "say (a", Fallback: "help"}

	err := cmd.Run(strings.NewReader(""), &bytes.Buffer{})
	assert.True(t, errors.Is(err, commands.ErrUnclosedGroup), "got %v", err)
}
