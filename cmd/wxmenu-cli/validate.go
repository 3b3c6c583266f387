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
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/pkg/convert"
	"github.com/spf13/cobra"
)

var (
	menuFile     string
	outputFormat string
)

// errInvalidMenu 校验未通过，错误已经打印
var errInvalidMenu = errors.New("menu document is invalid")

var validateCmd = &cobra.Command{
	Use:          "validate",
	Short:        "Validate a nested menu document and print the WeChat payload",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(menuFile)
		if err != nil {
			return err
		}
		doc, err := convert.ParseMenuDocument(menuFile, data)
		if err != nil {
			return err
		}
		preview, err := doc.Preview()
		if err != nil {
			return err
		}
		return printPreview(cmd, preview)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&menuFile, "file", "f", "", "menu document, .json or .yaml")
	validateCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "output format: json|yaml")
	_ = validateCmd.MarkFlagRequired("file")
}

func printPreview(cmd *cobra.Command, p *menu.Preview) error {
	out := cmd.OutOrStdout()
	if !p.Valid {
		for _, msg := range p.Errors {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "error:", msg)
		}
		return errInvalidMenu
	}

	var (
		b   []byte
		err error
	)
	switch outputFormat {
	case "yaml":
		b, err = convert.ToYAML(p.Menu)
	default:
		b, err = sonic.ConfigStd.MarshalIndent(p.Menu, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
