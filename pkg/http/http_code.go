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

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// StateConflict 版本状态不允许该操作
	StateConflict = failed(4090, "Version state conflict")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	// ExternalPublishFailed 微信接口调用失败，errMsg 为平台原始信息
	ExternalPublishFailed = failed(5020, "Platform request failed")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{Code: code, Msg: msg}
}

func success(code int, msg string) *Response {
	return &Response{Code: code, Msg: msg}
}
