// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { outputFormat = "json" })
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeMenu(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNextVersion(t *testing.T) {
	out, _, err := run(t, "next-version", "1.0.9")
	require.NoError(t, err)
	assert.Equal(t, "1.0.10\n", out)

	out, _, err = run(t, "next-version")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", out)
}

func TestValidate_Valid(t *testing.T) {
	path := writeMenu(t, "menu.yaml", `
buttons:
  - name: 今日歌曲
    type: click
    clickKey: V1001_TODAY_MUSIC
`)
	out, _, err := run(t, "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"key": "V1001_TODAY_MUSIC"`)

	out, _, err = run(t, "validate", "-f", path, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "key: V1001_TODAY_MUSIC")
}

func TestValidate_Invalid(t *testing.T) {
	path := writeMenu(t, "menu.json", `{"buttons":[{"name":"缺少key","type":"click"}]}`)
	_, stderr, err := run(t, "validate", "-f", path)
	assert.ErrorIs(t, err, errInvalidMenu)
	assert.Contains(t, stderr, "click key is required")
}
