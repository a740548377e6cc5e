package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-a", "localhost"},
			names: []string{"c"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.json", "-a", "localhost"},
			names: []string{"config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "names may be given with dashes",
			args:  []string{"-s", "secret"},
			names: []string{"-s"},
			want:  []string{"-s", "secret"},
		},
		{
			name:  "unknown flags and positionals ignored",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"c", "config"},
			want:  []string{},
		},
		{
			name:  "flag without value at end is kept",
			args:  []string{"-c"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "next dash token is not consumed as value",
			args:  []string{"-c", "--config=alt.json"},
			names: []string{"c", "config"},
			want:  []string{"-c", "--config=alt.json"},
		},
		{
			name:  "test runner flags are skipped",
			args:  []string{"-test.v", "-test.run", "TestX", "-t", "15"},
			names: []string{"t"},
			want:  []string{"-t", "15"},
		},
		{
			name:  "repeated flag preserved in order",
			args:  []string{"-c", "one.json", "-c", "two.json"},
			names: []string{"c"},
			want:  []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:  "empty args",
			args:  []string{},
			names: []string{"c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "/etc/notes.json"}
		assert.Equal(t, "/etc/notes.json", ConfigFilePath())
	})

	t.Run("long with equals", func(t *testing.T) {
		os.Args = []string{"bin", "--config=/etc/notes.json", "-a", ":9000"}
		assert.Equal(t, "/etc/notes.json", ConfigFilePath())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"bin", "-a", ":9000"}
		assert.Empty(t, ConfigFilePath())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "/one.json", "-config", "/two.json"}
		assert.Equal(t, "/two.json", ConfigFilePath())
	})
}
