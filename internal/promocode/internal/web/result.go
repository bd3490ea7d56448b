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

package web

import (
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/promocode/internal/promocode/internal/errs"
	"github.com/ecodeclub/promocode/internal/promocode/internal/service"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	promocodeNotFoundResult = ginx.Result{
		Code: errs.PromocodeNotFound.Code,
		Msg:  errs.PromocodeNotFound.Msg,
	}
	unauthorizedResult = ginx.Result{
		Code: errs.Unauthorized.Code,
		Msg:  errs.Unauthorized.Msg,
	}
	promocodeUnavailableResult = ginx.Result{
		Code: errs.PromocodeUnavailable.Code,
		Msg:  errs.PromocodeUnavailable.Msg,
	}
	promocodeUsedResult = ginx.Result{
		Code: errs.PromocodeUsed.Code,
		Msg:  errs.PromocodeUsed.Msg,
	}
	invalidPatternResult = ginx.Result{
		Code: errs.InvalidPattern.Code,
		Msg:  errs.InvalidPattern.Msg,
	}
	duplicateCodeResult = ginx.Result{
		Code: errs.DuplicateCode.Code,
		Msg:  errs.DuplicateCode.Msg,
	}
)

func redeemErrResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrPromocodeNotFound):
		return promocodeNotFoundResult
	case errors.Is(err, service.ErrUnauthorized):
		return unauthorizedResult
	case errors.Is(err, service.ErrPromocodeUsed):
		return promocodeUsedResult
	case errors.Is(err, service.ErrPromocodeUnavailable):
		return promocodeUnavailableResult
	default:
		return systemErrorResult
	}
}

func generateErrResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrInvalidConfig):
		return invalidPatternResult
	case errors.Is(err, service.ErrDuplicateCode):
		return duplicateCodeResult
	default:
		return systemErrorResult
	}
}
