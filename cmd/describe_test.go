package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/meltano/kubernetes-ext/models"
)

func runDescribe(t *testing.T, format string) string {
	t.Helper()
	cmd := describeCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--format", format})
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestDescribeCommand(t *testing.T) {
	t.Run("emits the command listing as text", func(t *testing.T) {
		out := runDescribe(t, "text")
		assert.Contains(t, out, "kubernetes: extension commands")
	})

	t.Run("emits a parsable json document", func(t *testing.T) {
		out := runDescribe(t, "json")
		var description models.Describe
		require.NoError(t, json.Unmarshal([]byte(out), &description))
		require.Len(t, description.Commands, 1)
		assert.Contains(t, description.Commands[0].Commands, "render")
	})

	t.Run("emits a parsable yaml document", func(t *testing.T) {
		out := runDescribe(t, "yaml")
		var description models.Describe
		require.NoError(t, yaml.Unmarshal([]byte(out), &description))
		require.Len(t, description.Commands, 1)
		assert.Equal(t, "kubernetes", description.Commands[0].Name)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		cmd := describeCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--format", "toml"})
		assert.Error(t, cmd.Execute())
	})
}
