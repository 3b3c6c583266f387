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

package convert

import (
	"github.com/bytedance/sonic"
	"sigs.k8s.io/yaml"
)

// JSONToYAML 菜单文档 JSON → YAML
func JSONToYAML(jsonData []byte) ([]byte, error) {
	return yaml.JSONToYAML(jsonData)
}

// YAMLToJSON YAML → JSON，解析菜单文档前先统一成 JSON
func YAMLToJSON(yamlData []byte) ([]byte, error) {
	return yaml.YAMLToJSON(yamlData)
}

// ToYAML 先用 sonic 序列化，再转成 YAML 输出
func ToYAML(v any) ([]byte, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONToYAML(b)
}
