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

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ecodeclub/promocode/internal/promocode/internal/event"
	evtmocks "github.com/ecodeclub/promocode/internal/promocode/internal/event/mocks"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository"
	repomocks "github.com/ecodeclub/promocode/internal/promocode/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_Redeem(t *testing.T) {
	one := int64(1)
	future := time.Now().Add(time.Hour).UnixMilli()
	past := time.Now().Add(-time.Hour).UnixMilli()
	testCases := []struct {
		name string
		mock func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer)

		code string
		uid  int64

		wantErr  error
		wantCode string
	}{
		{
			name: "兑换成功",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				p := domain.Promocode{ID: 1, Code: "ABCD-EFGH", Quantity: &one, ExpiresAt: future}
				repo.EXPECT().FindByCode(gomock.Any(), "ABCD-EFGH").Return(p, nil)
				repo.EXPECT().Redeem(gomock.Any(), p, int64(123), gomock.Any()).
					Return(domain.Promocode{
						ID:      1,
						Code:    "ABCD-EFGH",
						Payload: map[string]any{"sku": "vip"},
						Redemptions: []domain.Redemption{
							{ID: 1, PromocodeID: 1, Uid: 123},
						},
					}, nil)
				producer := evtmocks.NewMockRedeemedEventProducer(ctrl)
				producer.EXPECT().Produce(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, evt event.PromocodeRedeemedEvent) error {
						assert.Equal(t, "key-1", evt.Key)
						assert.Equal(t, int64(123), evt.Uid)
						assert.Equal(t, int64(1), evt.PromocodeID)
						assert.Equal(t, "ABCD-EFGH", evt.Code)
						assert.Equal(t, map[string]any{"sku": "vip"}, evt.Payload)
						return nil
					})
				return repo, producer
			},
			code:     "ABCD-EFGH",
			uid:      123,
			wantCode: "ABCD-EFGH",
		},
		{
			name: "匿名兑换不需要登录的优惠码",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				p := domain.Promocode{ID: 2, Code: "ANON"}
				repo.EXPECT().FindByCode(gomock.Any(), "ANON").Return(p, nil)
				repo.EXPECT().Redeem(gomock.Any(), p, int64(0), gomock.Any()).
					Return(domain.Promocode{ID: 2, Code: "ANON"}, nil)
				producer := evtmocks.NewMockRedeemedEventProducer(ctrl)
				producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)
				return repo, producer
			},
			code:     "ANON",
			uid:      0,
			wantCode: "ANON",
		},
		{
			name: "消息发送失败不影响兑换结果",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				p := domain.Promocode{ID: 3, Code: "MQ-ERR"}
				repo.EXPECT().FindByCode(gomock.Any(), "MQ-ERR").Return(p, nil)
				repo.EXPECT().Redeem(gomock.Any(), p, int64(123), gomock.Any()).
					Return(domain.Promocode{ID: 3, Code: "MQ-ERR"}, nil)
				producer := evtmocks.NewMockRedeemedEventProducer(ctrl)
				producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(errors.New("mock error"))
				return repo, producer
			},
			code:     "MQ-ERR",
			uid:      123,
			wantCode: "MQ-ERR",
		},
		{
			name: "优惠码不存在",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "NOT-FOUND").
					Return(domain.Promocode{}, fmt.Errorf("%w", ErrPromocodeNotFound))
				return repo, evtmocks.NewMockRedeemedEventProducer(ctrl)
			},
			code:    "NOT-FOUND",
			uid:     123,
			wantErr: ErrPromocodeNotFound,
		},
		{
			name: "需要登录",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "AUTH").
					Return(domain.Promocode{ID: 4, Code: "AUTH", AuthRequired: true}, nil)
				return repo, evtmocks.NewMockRedeemedEventProducer(ctrl)
			},
			code:    "AUTH",
			uid:     0,
			wantErr: ErrUnauthorized,
		},
		{
			name: "已过期",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "EXPIRED").
					Return(domain.Promocode{ID: 5, Code: "EXPIRED", Quantity: &one, ExpiresAt: past}, nil)
				return repo, evtmocks.NewMockRedeemedEventProducer(ctrl)
			},
			code:    "EXPIRED",
			uid:     123,
			wantErr: ErrPromocodeUnavailable,
		},
		{
			name: "一次性优惠码已被使用",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "USED").
					Return(domain.Promocode{ID: 6, Code: "USED", Disposable: true, Redeemed: 1}, nil)
				return repo, evtmocks.NewMockRedeemedEventProducer(ctrl)
			},
			code:    "USED",
			uid:     123,
			wantErr: ErrPromocodeUsed,
		},
		{
			name: "过期优先于已使用",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "USED-EXPIRED").
					Return(domain.Promocode{ID: 7, Code: "USED-EXPIRED", Disposable: true, Redeemed: 1, ExpiresAt: past}, nil)
				return repo, evtmocks.NewMockRedeemedEventProducer(ctrl)
			},
			code:    "USED-EXPIRED",
			uid:     123,
			wantErr: ErrPromocodeUnavailable,
		},
		{
			name: "登录检查优先于过期",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindByCode(gomock.Any(), "AUTH-EXPIRED").
					Return(domain.Promocode{ID: 8, Code: "AUTH-EXPIRED", AuthRequired: true, ExpiresAt: past}, nil)
				return repo, evtmocks.NewMockRedeemedEventProducer(ctrl)
			},
			code:    "AUTH-EXPIRED",
			uid:     0,
			wantErr: ErrUnauthorized,
		},
		{
			name: "并发兑换时被别人抢先",
			mock: func(ctrl *gomock.Controller) (repository.PromocodeRepository, event.RedeemedEventProducer) {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				p := domain.Promocode{ID: 9, Code: "RACE", Disposable: true}
				repo.EXPECT().FindByCode(gomock.Any(), "RACE").Return(p, nil)
				repo.EXPECT().Redeem(gomock.Any(), p, int64(123), gomock.Any()).
					Return(domain.Promocode{}, fmt.Errorf("%w: code=RACE", ErrPromocodeUsed))
				return repo, evtmocks.NewMockRedeemedEventProducer(ctrl)
			},
			code:    "RACE",
			uid:     123,
			wantErr: ErrPromocodeUsed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo, producer := tc.mock(ctrl)
			svc := NewService(repo, producer, func() string {
				return "key-1"
			})
			p, err := svc.Redeem(context.Background(), tc.code, tc.uid)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				assert.True(t, IsIneligible(err))
				return
			}
			assert.Equal(t, tc.wantCode, p.Code)
		})
	}
}

func TestService_Available(t *testing.T) {
	zero := int64(0)
	testCases := []struct {
		name          string
		mock          func(ctrl *gomock.Controller) repository.PromocodeRepository
		wantAvailable bool
		wantErr       error
	}{
		{
			name: "可以兑换",
			mock: func(ctrl *gomock.Controller) repository.PromocodeRepository {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindSnapshot(gomock.Any(), "CODE").
					Return(domain.Promocode{ID: 1, Code: "CODE"}, nil)
				return repo
			},
			wantAvailable: true,
		},
		{
			name: "不存在",
			mock: func(ctrl *gomock.Controller) repository.PromocodeRepository {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindSnapshot(gomock.Any(), "CODE").
					Return(domain.Promocode{}, ErrPromocodeNotFound)
				return repo
			},
		},
		{
			name: "次数用完",
			mock: func(ctrl *gomock.Controller) repository.PromocodeRepository {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindSnapshot(gomock.Any(), "CODE").
					Return(domain.Promocode{ID: 1, Code: "CODE", Quantity: &zero}, nil)
				return repo
			},
		},
		{
			name: "一次性已使用",
			mock: func(ctrl *gomock.Controller) repository.PromocodeRepository {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindSnapshot(gomock.Any(), "CODE").
					Return(domain.Promocode{ID: 1, Code: "CODE", Disposable: true, Redeemed: 1}, nil)
				return repo
			},
		},
		{
			name: "系统错误",
			mock: func(ctrl *gomock.Controller) repository.PromocodeRepository {
				repo := repomocks.NewMockPromocodeRepository(ctrl)
				repo.EXPECT().FindSnapshot(gomock.Any(), "CODE").
					Return(domain.Promocode{}, errors.New("mock db error"))
				return repo
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewService(tc.mock(ctrl), evtmocks.NewMockRedeemedEventProducer(ctrl), func() string {
				return ""
			})
			p, ok, err := svc.Available(context.Background(), "CODE")
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantAvailable, ok)
			if ok {
				assert.Equal(t, "CODE", p.Code)
			}
		})
	}
}

func TestIsIneligible(t *testing.T) {
	assert.True(t, IsIneligible(fmt.Errorf("x: %w", ErrPromocodeNotFound)))
	assert.True(t, IsIneligible(fmt.Errorf("x: %w", ErrUnauthorized)))
	assert.True(t, IsIneligible(fmt.Errorf("x: %w", ErrPromocodeUnavailable)))
	assert.True(t, IsIneligible(fmt.Errorf("x: %w", ErrPromocodeUsed)))
	assert.False(t, IsIneligible(ErrDuplicateCode))
	assert.False(t, IsIneligible(ErrInvalidConfig))
	assert.False(t, IsIneligible(errors.New("mock error")))
}
