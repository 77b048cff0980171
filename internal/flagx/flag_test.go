package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		valueFlags  []string
		switchFlags []string
		want        []string
	}{
		{
			name:       "short flag with separate value",
			args:       []string{"-c", "conf.json", "-t", "postgres"},
			valueFlags: []string{"-c", "-config"},
			want:       []string{"-c", "conf.json"},
		},
		{
			name:       "flag with equals",
			args:       []string{"-config=alt.json", "-t", "sqlite"},
			valueFlags: []string{"-c", "-config"},
			want:       []string{"-config=alt.json"},
		},
		{
			name:       "unknown flags ignored",
			args:       []string{"-x", "1", "--y=2", "positional"},
			valueFlags: []string{"-c", "-config"},
			want:       []string{},
		},
		{
			name:       "value flag at the end is kept as-is",
			args:       []string{"-d"},
			valueFlags: []string{"-d"},
			want:       []string{"-d"},
		},
		{
			name:       "next dash-starting token is not a value",
			args:       []string{"-c", "-config=alt.json"},
			valueFlags: []string{"-c", "-config"},
			want:       []string{"-c", "-config=alt.json"},
		},
		{
			name:       "repeated flag is preserved in order",
			args:       []string{"-l", "info", "-l", "debug"},
			valueFlags: []string{"-l"},
			want:       []string{"-l", "info", "-l", "debug"},
		},
		{
			name:        "switch does not swallow the next argument",
			args:        []string{"-k", "positional", "-n", "3"},
			valueFlags:  []string{"-n"},
			switchFlags: []string{"-k"},
			want:        []string{"-k", "-n", "3"},
		},
		{
			name:        "switch with explicit value",
			args:        []string{"-k=false", "-w", "5"},
			valueFlags:  []string{"-w"},
			switchFlags: []string{"-k"},
			want:        []string{"-k=false", "-w", "5"},
		},
		{
			name:       "empty args",
			args:       []string{},
			valueFlags: []string{"-c"},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.valueFlags, tt.switchFlags...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"scheduler", "-c", "/etc/scheduler.json"}
		assert.Equal(t, "/etc/scheduler.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"scheduler", "-config", "/etc/long.json"}
		assert.Equal(t, "/etc/long.json", JsonConfigFlags())
	})

	t.Run("other flags are ignored", func(t *testing.T) {
		os.Args = []string{"scheduler", "-t", "postgres", "-k"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last one wins", func(t *testing.T) {
		os.Args = []string{"scheduler", "-c", "/a.json", "-config", "/b.json"}
		assert.Equal(t, "/b.json", JsonConfigFlags())
	})
}
