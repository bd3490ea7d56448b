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
	"fmt"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/promocode/internal/promocode/internal/service"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &AdminHandler{}

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/promocode")
	g.POST("/gen", ginx.BS[GenerateReq](h.Output))
	g.POST("/create", ginx.BS[GenerateReq](h.Create))
	g.POST("/disable", ginx.BS[CodeReq](h.Disable))
	g.POST("/delete", ginx.BS[CodeReq](h.Delete))
	g.POST("/restore", ginx.BS[CodeReq](h.Restore))
	g.POST("/clear", ginx.S(h.Clear))
	g.POST("/list", ginx.BS[Page](h.List))
	g.POST("/available/list", ginx.S(h.AllAvailable))
	g.POST("/detail", ginx.BS[CodeReq](h.Detail))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

// Output 只生成兑换码，不落库
func (h *AdminHandler) Output(ctx *ginx.Context, req GenerateReq, sess session.Session) (ginx.Result, error) {
	codes, err := h.svc.Output(ctx.Request.Context(), req.toDomain())
	if err != nil {
		return generateErrResult(err), err
	}
	return ginx.Result{Data: CodesResp{Codes: codes}}, nil
}

func (h *AdminHandler) Create(ctx *ginx.Context, req GenerateReq, sess session.Session) (ginx.Result, error) {
	ps, err := h.svc.Create(ctx.Request.Context(), req.toDomain())
	if err != nil {
		return generateErrResult(err), fmt.Errorf("创建优惠码失败: %w, uid=%d", err, sess.Claims().Uid)
	}
	return ginx.Result{Data: newPromocodes(ps)}, nil
}

func (h *AdminHandler) Disable(ctx *ginx.Context, req CodeReq, sess session.Session) (ginx.Result, error) {
	ok, err := h.svc.Disable(ctx.Request.Context(), req.Code)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: ok}, nil
}

func (h *AdminHandler) Delete(ctx *ginx.Context, req CodeReq, sess session.Session) (ginx.Result, error) {
	ok, err := h.svc.Delete(ctx.Request.Context(), req.Code)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: ok}, nil
}

func (h *AdminHandler) Restore(ctx *ginx.Context, req CodeReq, sess session.Session) (ginx.Result, error) {
	ok, err := h.svc.Restore(ctx.Request.Context(), req.Code)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: ok}, nil
}

func (h *AdminHandler) Clear(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	cleared, err := h.svc.Clear(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: ClearResp{Cleared: cleared}}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req Page, sess session.Session) (ginx.Result, error) {
	offset, limit := req.normalize()
	ps, total, err := h.svc.List(ctx.Request.Context(), offset, limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: PromocodeList{Total: total, List: newPromocodes(ps)}}, nil
}

func (h *AdminHandler) AllAvailable(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	ps, err := h.svc.AllAvailable(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: PromocodeList{Total: int64(len(ps)), List: newPromocodes(ps)}}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req CodeReq, sess session.Session) (ginx.Result, error) {
	p, err := h.svc.Detail(ctx.Request.Context(), req.Code)
	if err != nil {
		return redeemErrResult(err), err
	}
	return ginx.Result{Data: newPromocode(p)}, nil
}
