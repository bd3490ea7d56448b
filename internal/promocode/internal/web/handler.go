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
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/promocode/internal/promocode/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc    service.Service
	sp     session.Provider
	logger *elog.Component
}

func NewHandler(svc service.Service, sp session.Provider) *Handler {
	return &Handler{
		svc:    svc,
		sp:     sp,
		logger: elog.DefaultLogger,
	}
}

// PublicRoutes 兑换不强制登录，是否需要登录由优惠码自己决定
func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/promocode")
	g.POST("/redeem", ginx.B[CodeReq](h.Redeem))
	g.POST("/available", ginx.B[CodeReq](h.Available))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) getUid(gctx *ginx.Context) int64 {
	sess, err := h.sp.Get(gctx)
	if err != nil {
		// 没登录
		return 0
	}
	return sess.Claims().Uid
}

func (h *Handler) Redeem(ctx *ginx.Context, req CodeReq) (ginx.Result, error) {
	uid := h.getUid(ctx)
	p, err := h.svc.Redeem(ctx.Request.Context(), req.Code, uid)
	if err != nil {
		if service.IsIneligible(err) {
			h.logger.Warn("兑换优惠码失败", elog.String("code", req.Code), elog.Int64("uid", uid), elog.FieldErr(err))
		}
		return redeemErrResult(err), err
	}
	return ginx.Result{Data: newPromocode(p)}, nil
}

func (h *Handler) Available(ctx *ginx.Context, req CodeReq) (ginx.Result, error) {
	p, ok, err := h.svc.Available(ctx.Request.Context(), req.Code)
	if err != nil {
		return systemErrorResult, err
	}
	if !ok {
		return ginx.Result{Data: AvailableResp{}}, nil
	}
	vo := newPromocode(p)
	return ginx.Result{Data: AvailableResp{Available: true, Promocode: &vo}}, nil
}
