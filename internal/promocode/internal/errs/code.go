// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errs

var (
	SystemError = ErrorCode{Code: 530001, Msg: "系统错误"}

	PromocodeNotFound    = ErrorCode{Code: 530002, Msg: "优惠码不存在"}
	Unauthorized         = ErrorCode{Code: 530003, Msg: "请先登录再兑换"}
	PromocodeUnavailable = ErrorCode{Code: 530004, Msg: "优惠码已过期或已用完"}
	PromocodeUsed        = ErrorCode{Code: 530005, Msg: "优惠码已被使用"}
	InvalidPattern       = ErrorCode{Code: 530006, Msg: "兑换码生成参数非法"}
	DuplicateCode        = ErrorCode{Code: 530007, Msg: "兑换码冲突，请重试"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
