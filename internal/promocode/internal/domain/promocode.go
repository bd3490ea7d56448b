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

import "time"

// Promocode 优惠码
type Promocode struct {
	ID   int64
	Code string
	// Quantity 剩余可兑换次数，nil 表示不限次数
	Quantity *int64
	// Payload 兑换成功后交给业务方的附加数据
	Payload map[string]any
	// Disposable 一次性优惠码，只要有一条兑换记录就不能再兑换
	Disposable   bool
	AuthRequired bool
	// ExpiresAt 过期时间，毫秒时间戳，0 表示永不过期
	ExpiresAt int64
	// Redeemed 兑换记录条数
	Redeemed int64
	// DeletedAt 软删除时间，0 表示未删除
	DeletedAt   int64
	Redemptions []Redemption
	Ctime       int64
	Utime       int64
}

// Redemption 兑换记录
type Redemption struct {
	ID          int64
	PromocodeID int64
	// Uid 为 0 表示匿名兑换
	Uid    int64
	UsedAt int64
}

func (p Promocode) HasQuantity() bool {
	return p.Quantity == nil || *p.Quantity > 0
}

func (p Promocode) IsExpired() bool {
	return p.IsExpiredAt(time.Now())
}

// IsExpiredAt 到达过期时间的那一毫秒即视为过期
func (p Promocode) IsExpiredAt(now time.Time) bool {
	return p.ExpiresAt > 0 && now.UnixMilli() >= p.ExpiresAt
}

func (p Promocode) IsAvailable() bool {
	return p.IsAvailableAt(time.Now())
}

func (p Promocode) IsAvailableAt(now time.Time) bool {
	return p.HasQuantity() && !p.IsExpiredAt(now)
}

func (p Promocode) IsDisposable() bool {
	return p.Disposable
}

func (p Promocode) IsAuthRequired() bool {
	return p.AuthRequired
}

func (p Promocode) IsUsed() bool {
	return p.Redeemed > 0
}

func (p Promocode) IsRedeemable() bool {
	return p.IsRedeemableAt(time.Now())
}

// IsRedeemableAt 可用，并且不是已经用过的一次性优惠码
func (p Promocode) IsRedeemableAt(now time.Time) bool {
	return p.IsAvailableAt(now) && !(p.Disposable && p.IsUsed())
}

// Batch 一次批量生成的参数
type Batch struct {
	Amount  int `validate:"gte=0,lte=10000"`
	Pattern PatternOverride
	Payload map[string]any
	// ExpiresIn 有效天数，0 表示永不过期
	ExpiresIn int `validate:"gte=0"`
	// Quantity nil 表示不限次数
	Quantity     *int64 `validate:"omitempty,gte=0"`
	Disposable   bool
	AuthRequired bool
}

func (b Batch) Validate() error {
	return validate.Struct(b)
}
