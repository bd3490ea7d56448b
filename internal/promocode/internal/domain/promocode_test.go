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

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromocode_IsRedeemableAt(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	zero, one := int64(0), int64(1)
	testCases := []struct {
		name          string
		p             Promocode
		wantAvailable bool
		wantRedeem    bool
	}{
		{
			name:          "不限次数永不过期",
			p:             Promocode{},
			wantAvailable: true,
			wantRedeem:    true,
		},
		{
			name:          "次数用完",
			p:             Promocode{Quantity: &zero},
			wantAvailable: false,
			wantRedeem:    false,
		},
		{
			name:          "还剩一次",
			p:             Promocode{Quantity: &one, ExpiresAt: now.Add(time.Minute).UnixMilli()},
			wantAvailable: true,
			wantRedeem:    true,
		},
		{
			name:          "刚好到过期时间",
			p:             Promocode{ExpiresAt: now.UnixMilli()},
			wantAvailable: false,
			wantRedeem:    false,
		},
		{
			name:          "已过期",
			p:             Promocode{Quantity: &one, ExpiresAt: now.Add(-time.Hour).UnixMilli()},
			wantAvailable: false,
			wantRedeem:    false,
		},
		{
			name:          "一次性未使用",
			p:             Promocode{Disposable: true},
			wantAvailable: true,
			wantRedeem:    true,
		},
		{
			name:          "一次性已使用",
			p:             Promocode{Disposable: true, Redeemed: 1},
			wantAvailable: true,
			wantRedeem:    false,
		},
		{
			name:          "普通优惠码被用过",
			p:             Promocode{Redeemed: 10},
			wantAvailable: true,
			wantRedeem:    true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantAvailable, tc.p.IsAvailableAt(now))
			assert.Equal(t, tc.wantRedeem, tc.p.IsRedeemableAt(now))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     func() Config
		wantErr bool
	}{
		{
			name: "默认配置",
			cfg:  DefaultConfig,
		},
		{
			name: "mask 为空",
			cfg: func() Config {
				c := DefaultConfig()
				c.Mask = ""
				return c
			},
			wantErr: true,
		},
		{
			name: "两个关联字段同名",
			cfg: func() Config {
				c := DefaultConfig()
				c.Database.RelatedPivotKey = c.Database.ForeignPivotKey
				return c
			},
			wantErr: true,
		},
		{
			name: "重试次数为负数",
			cfg: func() Config {
				c := DefaultConfig()
				c.CreateRetries = -1
				return c
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg().Validate()
			assert.Equal(t, tc.wantErr, err != nil)
		})
	}
}

func TestBatch_Validate(t *testing.T) {
	negative, zero := int64(-5), int64(0)
	testCases := []struct {
		name    string
		batch   Batch
		wantErr bool
	}{
		{
			name:  "不限次数",
			batch: Batch{Amount: 1},
		},
		{
			name:  "次数为 0",
			batch: Batch{Amount: 1, Quantity: &zero},
		},
		{
			name:    "次数为负数",
			batch:   Batch{Amount: 1, Quantity: &negative},
			wantErr: true,
		},
		{
			name:    "有效天数为负数",
			batch:   Batch{Amount: 1, ExpiresIn: -1},
			wantErr: true,
		},
		{
			name:    "个数为负数",
			batch:   Batch{Amount: -1},
			wantErr: true,
		},
		{
			name:    "个数超过上限",
			batch:   Batch{Amount: 10001},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.batch.Validate()
			assert.Equal(t, tc.wantErr, err != nil)
		})
	}
}
