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
//go:build e2e

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/promocode/internal/promocode"
	"github.com/ecodeclub/promocode/internal/promocode/internal/errs"
	"github.com/ecodeclub/promocode/internal/promocode/internal/event"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository/dao"
	"github.com/ecodeclub/promocode/internal/promocode/internal/web"
	"github.com/ecodeclub/promocode/internal/test"
	testioc "github.com/ecodeclub/promocode/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	promocodesTable = "promocodes"
	pivotTable      = "promocode_user"
)

type PromocodeTestSuite struct {
	suite.Suite
	db       *egorm.Component
	server   *egin.Component
	mod      *promocode.Module
	consumer mq.Consumer
}

func TestPromocode(t *testing.T) {
	suite.Run(t, new(PromocodeTestSuite))
}

func (s *PromocodeTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	q := testioc.InitMQ()
	consumer, err := q.Consumer(event.PromocodeRedeemedEventName, "promocode_e2e")
	require.NoError(s.T(), err)
	s.consumer = consumer

	econf.Set("promocode", map[string]any{
		"mask":           "****-****",
		"characters":     "ABCDEFGH23456789",
		"clearBatchSize": 2,
	})
	mod, err := promocode.InitModule(s.db, q, testioc.InitCache(), &test.SessionProvider{})
	require.NoError(s.T(), err)
	s.mod = mod

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		uid, err := strconv.ParseInt(ctx.GetHeader("uid"), 10, 64)
		if err != nil {
			// 匿名用户
			return
		}
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid:  uid,
			Data: map[string]string{"creator": "true"},
		}))
	})
	mod.Hdl.PublicRoutes(server.Engine)
	mod.AdminHdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *PromocodeTestSuite) TearDownTest() {
	err := s.db.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", promocodesTable)).Error
	require.NoError(s.T(), err)
	err = s.db.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", pivotTable)).Error
	require.NoError(s.T(), err)
}

func (s *PromocodeTestSuite) insert(p dao.Promocode) dao.Promocode {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	err := s.db.Table(promocodesTable).Create(&p).Error
	require.NoError(s.T(), err)
	return p
}

func (s *PromocodeTestSuite) find(code string) dao.Promocode {
	var p dao.Promocode
	err := s.db.Table(promocodesTable).Where("code = ?", code).First(&p).Error
	require.NoError(s.T(), err)
	return p
}

func (s *PromocodeTestSuite) countRedemptions(id int64) int64 {
	var cnt int64
	err := s.db.Table(pivotTable).Where("promocode_id = ?", id).Count(&cnt).Error
	require.NoError(s.T(), err)
	return cnt
}

func (s *PromocodeTestSuite) post(path string, uid int64, body any) *http.Request {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	if uid > 0 {
		req.Header.Set("uid", strconv.FormatInt(uid, 10))
	}
	return req
}

func (s *PromocodeTestSuite) redeem(code string, uid int64) *test.JSONResponseRecorder[web.Promocode] {
	recorder := test.NewJSONResponseRecorder[web.Promocode]()
	s.server.ServeHTTP(recorder, s.post("/promocode/redeem", uid, web.CodeReq{Code: code}))
	return recorder
}

func (s *PromocodeTestSuite) consumeEvent() event.PromocodeRedeemedEvent {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	msg, err := s.consumer.Consume(ctx)
	require.NoError(s.T(), err)
	var evt event.PromocodeRedeemedEvent
	err = json.Unmarshal(msg.Value, &evt)
	require.NoError(s.T(), err)
	return evt
}

func (s *PromocodeTestSuite) TestCreateAndRedeem() {
	t := s.T()
	quantity := int64(2)
	recorder := test.NewJSONResponseRecorder[[]web.Promocode]()
	s.server.ServeHTTP(recorder, s.post("/promocode/create", 1, web.GenerateReq{
		Amount:    3,
		Payload:   map[string]any{"sku": "sku-1"},
		ExpiresIn: 7,
		Quantity:  &quantity,
	}))
	require.Equal(t, 200, recorder.Code)
	created := recorder.MustScan().Data
	require.Len(t, created, 3)
	for _, p := range created {
		assert.Regexp(t, "^[A-H2-9]{4}-[A-H2-9]{4}$", p.Code)
		assert.Equal(t, quantity, *p.Quantity)
		assert.True(t, p.ExpiresAt > time.Now().UnixMilli())
	}

	code := created[0].Code
	res := s.redeem(code, 0)
	require.Equal(t, 200, res.Code)
	redeemed := res.MustScan().Data
	assert.Equal(t, int64(1), *redeemed.Quantity)
	assert.Equal(t, int64(1), redeemed.Redeemed)
	require.Len(t, redeemed.Redemptions, 1)
	assert.Equal(t, int64(0), redeemed.Redemptions[0].Uid)

	evt := s.consumeEvent()
	assert.Equal(t, code, evt.Code)
	assert.Equal(t, int64(0), evt.Uid)
	assert.Equal(t, created[0].ID, evt.PromocodeID)
	assert.Equal(t, map[string]any{"sku": "sku-1"}, evt.Payload)
	assert.NotEmpty(t, evt.Key)

	// 非一次性优惠码可以被同一个人重复兑换
	res = s.redeem(code, 0)
	require.Equal(t, 200, res.Code)
	_ = s.consumeEvent()
	p := s.find(code)
	assert.Equal(t, int64(0), p.Quantity.Int64)
	assert.Equal(t, int64(2), p.Redeemed)
	assert.Equal(t, int64(2), s.countRedemptions(p.Id))

	res = s.redeem(code, 0)
	assert.Equal(t, 500, res.Code)
	assert.Equal(t, test.Result[web.Promocode]{
		Code: errs.PromocodeUnavailable.Code,
		Msg:  errs.PromocodeUnavailable.Msg,
	}, res.MustScan())
}

func (s *PromocodeTestSuite) TestRedeemIneligible() {
	now := time.Now().UnixMilli()
	testCases := []struct {
		name   string
		before func(t *testing.T)
		code   string
		uid    int64

		wantResp test.Result[web.Promocode]
	}{
		{
			name: "优惠码不存在",
			before: func(t *testing.T) {
			},
			code: "NOT-EXIST",
			uid:  123,
			wantResp: test.Result[web.Promocode]{
				Code: errs.PromocodeNotFound.Code,
				Msg:  errs.PromocodeNotFound.Msg,
			},
		},
		{
			name: "需要登录",
			before: func(t *testing.T) {
				s.insert(dao.Promocode{Code: "AUTH-0001", AuthRequired: true})
			},
			code: "AUTH-0001",
			wantResp: test.Result[web.Promocode]{
				Code: errs.Unauthorized.Code,
				Msg:  errs.Unauthorized.Msg,
			},
		},
		{
			name: "已过期",
			before: func(t *testing.T) {
				s.insert(dao.Promocode{
					Code:      "EXPI-0001",
					ExpiresAt: sql.NullInt64{Int64: now - 1000, Valid: true},
				})
			},
			code: "EXPI-0001",
			uid:  123,
			wantResp: test.Result[web.Promocode]{
				Code: errs.PromocodeUnavailable.Code,
				Msg:  errs.PromocodeUnavailable.Msg,
			},
		},
		{
			name: "已用完",
			before: func(t *testing.T) {
				s.insert(dao.Promocode{
					Code:     "ZERO-0001",
					Quantity: sql.NullInt64{Int64: 0, Valid: true},
				})
			},
			code: "ZERO-0001",
			uid:  123,
			wantResp: test.Result[web.Promocode]{
				Code: errs.PromocodeUnavailable.Code,
				Msg:  errs.PromocodeUnavailable.Msg,
			},
		},
		{
			name: "一次性优惠码已被别人使用",
			before: func(t *testing.T) {
				p := s.insert(dao.Promocode{
					Code:         "ONCE-0001",
					IsDisposable: true,
					Redeemed:     1,
				})
				err := s.db.Table(pivotTable).Create(&dao.PromocodeUser{
					PromocodeId: p.Id,
					UserId:      456,
					UsedAt:      now,
				}).Error
				require.NoError(t, err)
			},
			code: "ONCE-0001",
			uid:  123,
			wantResp: test.Result[web.Promocode]{
				Code: errs.PromocodeUsed.Code,
				Msg:  errs.PromocodeUsed.Msg,
			},
		},
	}

	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			tc.before(t)
			res := s.redeem(tc.code, tc.uid)
			assert.Equal(t, 500, res.Code)
			assert.Equal(t, tc.wantResp, res.MustScan())
		})
	}
}

func (s *PromocodeTestSuite) TestRedeemAuthRequired() {
	t := s.T()
	p := s.insert(dao.Promocode{
		Code:         "AUTH-0002",
		AuthRequired: true,
		IsDisposable: true,
		Payload: sqlx.JsonColumn[map[string]any]{
			Val:   map[string]any{"days": "30"},
			Valid: true,
		},
	})
	res := s.redeem(p.Code, 123)
	require.Equal(t, 200, res.Code)
	evt := s.consumeEvent()
	assert.Equal(t, int64(123), evt.Uid)
	assert.Equal(t, map[string]any{"days": "30"}, evt.Payload)

	var r dao.PromocodeUser
	err := s.db.Table(pivotTable).Where("promocode_id = ?", p.Id).First(&r).Error
	require.NoError(t, err)
	assert.Equal(t, int64(123), r.UserId)
	assert.True(t, r.UsedAt > 0)

	// 一次性优惠码，同一个人也不能再兑换
	res = s.redeem(p.Code, 123)
	assert.Equal(t, 500, res.Code)
	assert.Equal(t, errs.PromocodeUsed.Code, res.MustScan().Code)
}

func (s *PromocodeTestSuite) TestRedeemConcurrently() {
	t := s.T()
	p := s.insert(dao.Promocode{
		Code:     "RACE-0001",
		Quantity: sql.NullInt64{Int64: 5, Valid: true},
	})
	const n = 20
	var (
		wg      sync.WaitGroup
		success atomic.Int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, err := s.mod.Svc.Redeem(context.Background(), p.Code, uid)
			if err == nil {
				success.Add(1)
				return
			}
			assert.True(t, promocode.IsIneligible(err))
		}(int64(i + 1))
	}
	wg.Wait()
	for i := 0; i < int(success.Load()); i++ {
		_ = s.consumeEvent()
	}
	assert.Equal(t, int64(5), success.Load())
	res := s.find(p.Code)
	assert.Equal(t, int64(0), res.Quantity.Int64)
	assert.Equal(t, int64(5), res.Redeemed)
	assert.Equal(t, int64(5), s.countRedemptions(p.Id))
}

func (s *PromocodeTestSuite) TestAvailable() {
	t := s.T()
	s.insert(dao.Promocode{Code: "AVAI-0001"})
	s.insert(dao.Promocode{
		Code:      "AVAI-0002",
		ExpiresAt: sql.NullInt64{Int64: time.Now().Add(-time.Hour).UnixMilli(), Valid: true},
	})
	testCases := []struct {
		code string
		want bool
	}{
		{code: "AVAI-0001", want: true},
		{code: "AVAI-0002", want: false},
		{code: "AVAI-0003", want: false},
	}
	for _, tc := range testCases {
		recorder := test.NewJSONResponseRecorder[web.AvailableResp]()
		s.server.ServeHTTP(recorder, s.post("/promocode/available", 0, web.CodeReq{Code: tc.code}))
		require.Equal(t, 200, recorder.Code)
		res := recorder.MustScan().Data
		assert.Equal(t, tc.want, res.Available, tc.code)
		if tc.want {
			assert.Equal(t, tc.code, res.Promocode.Code)
		}
	}
}

func (s *PromocodeTestSuite) TestDisableDeleteRestore() {
	t := s.T()
	p := s.insert(dao.Promocode{Code: "LIFE-0001"})
	res := s.redeem(p.Code, 123)
	require.Equal(t, 200, res.Code)
	_ = s.consumeEvent()

	ok := s.adminCodeOp("/promocode/disable", p.Code)
	assert.True(t, ok)
	disabled := s.find(p.Code)
	assert.Equal(t, int64(0), disabled.Quantity.Int64)
	assert.True(t, disabled.ExpiresAt.Int64 <= time.Now().UnixMilli())
	assert.Equal(t, 500, s.redeem(p.Code, 123).Code)

	ok = s.adminCodeOp("/promocode/delete", p.Code)
	assert.True(t, ok)
	var deleted dao.Promocode
	err := s.db.Table(promocodesTable).Where("code = ?", p.Code).First(&deleted).Error
	require.NoError(t, err)
	assert.True(t, deleted.DeletedAt > 0)
	assert.Equal(t, int64(0), s.countRedemptions(p.Id))
	assert.False(t, s.adminCodeOp("/promocode/delete", p.Code))

	ok = s.adminCodeOp("/promocode/restore", p.Code)
	assert.True(t, ok)
	restored := s.find(p.Code)
	assert.Equal(t, int64(0), restored.DeletedAt)
	assert.False(t, s.adminCodeOp("/promocode/restore", p.Code))
}

func (s *PromocodeTestSuite) TestDisableAndDeleteRepeatedly() {
	t := s.T()
	p := s.insert(dao.Promocode{Code: "LIFE-0002"})
	// 同一毫秒内重复禁用，MySQL 不会更新任何行
	for i := 0; i < 20; i++ {
		assert.True(t, s.adminCodeOp("/promocode/disable", p.Code))
	}

	assert.True(t, s.adminCodeOp("/promocode/delete", p.Code))
	for i := 0; i < 5; i++ {
		s.insert(dao.Promocode{Code: p.Code})
		assert.True(t, s.adminCodeOp("/promocode/delete", p.Code))
	}
	var cnt int64
	err := s.db.Table(promocodesTable).Where("code = ? AND deleted_at > 0", p.Code).Count(&cnt).Error
	require.NoError(t, err)
	assert.Equal(t, int64(6), cnt)
}

func (s *PromocodeTestSuite) adminCodeOp(path, code string) bool {
	recorder := test.NewJSONResponseRecorder[bool]()
	s.server.ServeHTTP(recorder, s.post(path, 1, web.CodeReq{Code: code}))
	require.Equal(s.T(), 200, recorder.Code)
	return recorder.MustScan().Data
}

func (s *PromocodeTestSuite) TestClear() {
	t := s.T()
	past := sql.NullInt64{Int64: time.Now().Add(-time.Hour).UnixMilli(), Valid: true}
	s.insert(dao.Promocode{Code: "CLRA-0001"})
	s.insert(dao.Promocode{Code: "CLRA-0002", ExpiresAt: past})
	s.insert(dao.Promocode{Code: "CLRA-0003", Quantity: sql.NullInt64{Valid: true}})
	s.insert(dao.Promocode{Code: "CLRA-0004"})
	s.insert(dao.Promocode{Code: "CLRA-0005", IsDisposable: true, Redeemed: 1})

	recorder := test.NewJSONResponseRecorder[web.ClearResp]()
	s.server.ServeHTTP(recorder, s.post("/promocode/clear", 1, struct{}{}))
	require.Equal(t, 200, recorder.Code)
	assert.Equal(t, int64(3), recorder.MustScan().Data.Cleared)

	list := test.NewJSONResponseRecorder[web.PromocodeList]()
	s.server.ServeHTTP(list, s.post("/promocode/list", 1, web.Page{Offset: 0, Limit: 10}))
	require.Equal(t, 200, list.Code)
	res := list.MustScan().Data
	assert.Equal(t, int64(2), res.Total)
	codes := make([]string, 0, len(res.List))
	for _, p := range res.List {
		codes = append(codes, p.Code)
	}
	assert.ElementsMatch(t, []string{"CLRA-0001", "CLRA-0004"}, codes)

	// 定时任务再跑一次没有东西可以清理
	err := s.mod.ClearJob.Run(context.Background())
	require.NoError(t, err)
	var cnt int64
	err = s.db.Table(promocodesTable).Where("deleted_at = 0").Count(&cnt).Error
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)
}
