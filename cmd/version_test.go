package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmdOutput(t *testing.T) {
	cmd := newVersionCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	output := out.String()
	if assert.NotEmpty(t, output) {
		ok := bytes.Contains(out.Bytes(), []byte("tool version")) &&
			bytes.Contains(out.Bytes(), []byte("go version"))
		if !ok {
			assert.Contains(t, output, "version: unknown")
		}
	}
}
