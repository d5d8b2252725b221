// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "name": "petstore",
  "input_types": {
    "types": [
      {
        "kind": "struct",
        "name": "Pet",
        "fields": [
          {"name": "name", "type": {"name": "string"}, "required": true}
        ]
      }
    ]
  }
}`

// writeProject lays out a reflectgen.yaml plus schema file in dir.
func writeProject(t *testing.T, dir, configBody string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(configBody), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schema"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema", "api.json"), []byte(testSchema), 0o600))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(dir))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		wantErr error
	}{
		{
			name:    "not initialized",
			setup:   func(*testing.T, string) {},
			wantErr: ErrNotInitialized,
		},
		{
			name: "invalid config",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 99\nschema: api.json\n"), 0o600))
			},
			wantErr: ErrInvalidConfig,
		},
		{
			name: "schema not found",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1\nschema: missing.json\n"), 0o600))
			},
			wantErr: ErrSchemaNotFound,
		},
		{
			name: "invalid schema",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1\nschema: api.json\n"), 0o600))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "api.json"), []byte("{not json"), 0o600))
			},
			wantErr: ErrInvalidSchema,
		},
		{
			name: "valid",
			setup: func(t *testing.T, dir string) {
				writeProject(t, dir, "version: 1\nschema: schema/api.json\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			chdir(t, dir)

			ctx, err := Load(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			projCtx := From(ctx)
			require.NotNil(t, projCtx)
			assert.Equal(t, "schema/api.json", projCtx.Config.Schema)
			assert.Equal(t, "petstore", projCtx.Schema.Name)
		})
	}
}

func TestFrom_NoContextStored(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}

func TestRequireFromCommand(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	_, err := RequireFromCommand(cmd)
	assert.Error(t, err)
}

func TestPreRunLoad_WithCommandExecution(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "version: 1\nschema: schema/api.json\n")
	chdir(t, dir)

	var capturedCtx *Context

	rootCmd := &cobra.Command{
		Use:               "test",
		PersistentPreRunE: PreRunLoad,
	}
	subCmd := &cobra.Command{
		Use: "sub",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, requireErr := RequireFromCommand(cmd)
			capturedCtx = ctx
			return requireErr
		},
	}
	rootCmd.AddCommand(subCmd)

	rootCmd.SetArgs([]string{"sub"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	require.NotNil(t, capturedCtx)
	assert.Equal(t, "petstore", capturedCtx.Schema.Name)
	_, ok := capturedCtx.Schema.LookupType("Pet")
	assert.True(t, ok)
}
