package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptPassword(t *testing.T) {
	defer func(orig func(int) ([]byte, error)) { readPasswordFunc = orig }(readPasswordFunc)

	tests := []struct {
		name    string
		input   []byte
		readErr error
		want    string
		wantErr bool
	}{
		{"ok", []byte("Password123"), nil, "Password123", false},
		{"blank", []byte("   "), nil, "", true},
		{"read error", nil, errors.New("no tty"), "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			readPasswordFunc = func(int) ([]byte, error) { return tc.input, tc.readErr }
			got, err := promptPassword()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApp_Commands(t *testing.T) {
	app := newApp()
	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"migrate", "seed", "create-officer", "officer", "cleanup-tokens"}, names)

	officer := app.Command("officer")
	require.NotNil(t, officer)
	var subs []string
	for _, c := range officer.Subcommands {
		subs = append(subs, c.Name)
	}
	assert.Equal(t, []string{"verify", "unverify", "activate", "deactivate"}, subs)
}

func TestApp_RefusesMemoryDriver(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  driver: memory\nlogging:\n  level: disabled\n"), 0o600))
	t.Setenv("JWT_SECRET", "s3cret")

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"honorsociety-admin", "--config", cfgPath, "seed"})
	assert.ErrorIs(t, err, errMemoryDriver)
}
