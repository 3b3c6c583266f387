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

package log

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDefaultConf(t *testing.T) {
	conf := SetDefaults()

	if conf.Output != "stdout" {
		t.Errorf("expected output to be stdout, got %s", conf.Output)
	}
	if conf.Level != "INFO" {
		t.Errorf("expected level to be INFO, got %s", conf.Level)
	}
	if conf.Filename != defaultFilename {
		t.Errorf("expected filename %s, got %s", defaultFilename, conf.Filename)
	}
}

func TestConf_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    *Conf
		wantErr bool
	}{
		{
			name:    "valid stdout config",
			conf:    &Conf{Output: "stdout", Level: "INFO"},
			wantErr: false,
		},
		{
			name: "valid file config",
			conf: &Conf{
				Output:     "file",
				Path:       "/tmp/logs",
				Level:      "DEBUG",
				KeepHours:  7,
				RotateSize: 100,
				RotateNum:  10,
			},
			wantErr: false,
		},
		{
			name:    "invalid file config - missing path",
			conf:    &Conf{Output: "file", Level: "INFO"},
			wantErr: true,
		},
		{
			name: "file config with auto-correction",
			conf: &Conf{Output: "file", Path: "/tmp/logs", Level: "INFO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			// 验证自动修正
			if !tt.wantErr && tt.conf.Output == "file" {
				if tt.conf.RotateSize <= 0 || tt.conf.RotateNum <= 0 || tt.conf.KeepHours <= 0 {
					t.Errorf("rotation settings should be auto-corrected, got %+v", tt.conf)
				}
				if tt.conf.Filename == "" {
					t.Error("Filename should default when empty")
				}
			}
		})
	}
}

func TestNewLog_File(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewLog(&Conf{
		Output:     "file",
		Path:       tmpDir,
		Filename:   "test.log",
		Level:      "INFO",
		KeepHours:  1,
		RotateSize: 1,
		RotateNum:  3,
	})
	if err != nil {
		t.Fatalf("NewLog() error = %v", err)
	}

	Infow("menu published", "accountId", "acc-1", "version", "1.0.0")
	Debugw("filtered out at INFO", "k", "v")
	_ = logger.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "test.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "menu published") {
		t.Errorf("log file should contain the info entry, got %q", content)
	}
	if strings.Contains(string(content), "filtered out at INFO") {
		t.Error("debug entry should not be written at INFO level")
	}
}

func TestWithContext_NoSpan(t *testing.T) {
	MustInit(SetDefaults())

	if WithContext(context.Background()) == nil {
		t.Fatal("WithContext should never return nil")
	}
	if WithContext(nil) == nil {
		t.Fatal("WithContext(nil) should fall back to the global logger")
	}
}

func TestConcurrentLogging(t *testing.T) {
	MustInit(SetDefaults())

	done := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		n := i
		go func() {
			Infow("concurrent message", "number", n)
			Warnw("warn message", "number", n)
			done <- true
		}()
	}
	for range 50 {
		<-done
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"FATAL", zapcore.FatalLevel},
		{"INVALID", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := parseLogLevel(tt.input); result != tt.expected {
				t.Errorf("parseLogLevel(%s) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetLevel(t *testing.T) {
	MustInit(&Conf{Output: "stdout", Level: "WARN"})
	if GetLevel() != zapcore.WarnLevel {
		t.Errorf("GetLevel() = %v, want warn", GetLevel())
	}
	MustInit(SetDefaults())
}

func TestSetLevel(t *testing.T) {
	MustInit(SetDefaults())
	SetLevel("ERROR")
	if GetLevel() != zapcore.ErrorLevel {
		t.Errorf("GetLevel() = %v, want error", GetLevel())
	}
	SetLevel("INFO")
}
