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
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
)

type CodeReq struct {
	Code string `json:"code"`
}

// GenerateReq 批量生成兑换码，规则字段不传则沿用配置
type GenerateReq struct {
	Amount     int     `json:"amount"`
	Mask       *string `json:"mask,omitempty"`
	Characters *string `json:"characters,omitempty"`
	Prefix     *string `json:"prefix,omitempty"`
	Suffix     *string `json:"suffix,omitempty"`
	Delimiter  *string `json:"delimiter,omitempty"`

	Payload map[string]any `json:"payload,omitempty"`
	// ExpiresIn 有效天数
	ExpiresIn    int    `json:"expiresIn,omitempty"`
	Quantity     *int64 `json:"quantity,omitempty"`
	Disposable   bool   `json:"disposable,omitempty"`
	AuthRequired bool   `json:"authRequired,omitempty"`
}

func (r GenerateReq) toDomain() domain.Batch {
	return domain.Batch{
		Amount: r.Amount,
		Pattern: domain.PatternOverride{
			Mask:       r.Mask,
			Characters: r.Characters,
			Prefix:     r.Prefix,
			Suffix:     r.Suffix,
			Delimiter:  r.Delimiter,
		},
		Payload:      r.Payload,
		ExpiresIn:    r.ExpiresIn,
		Quantity:     r.Quantity,
		Disposable:   r.Disposable,
		AuthRequired: r.AuthRequired,
	}
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Page struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

// normalize 没有传 limit 时使用默认值，并限制单页的最大条数
func (p Page) normalize() (offset, limit int) {
	offset, limit = max(p.Offset, 0), p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	return offset, min(limit, maxPageSize)
}

type Promocode struct {
	ID           int64          `json:"id"`
	Code         string         `json:"code"`
	Quantity     *int64         `json:"quantity"`
	Payload      map[string]any `json:"payload,omitempty"`
	Disposable   bool           `json:"disposable"`
	AuthRequired bool           `json:"authRequired"`
	ExpiresAt    int64          `json:"expiresAt"`
	Redeemed     int64          `json:"redeemed"`
	Redemptions  []Redemption   `json:"redemptions,omitempty"`
	Ctime        int64          `json:"ctime"`
	Utime        int64          `json:"utime"`
}

type Redemption struct {
	Uid    int64 `json:"uid"`
	UsedAt int64 `json:"usedAt"`
}

func newPromocode(p domain.Promocode) Promocode {
	return Promocode{
		ID:           p.ID,
		Code:         p.Code,
		Quantity:     p.Quantity,
		Payload:      p.Payload,
		Disposable:   p.Disposable,
		AuthRequired: p.AuthRequired,
		ExpiresAt:    p.ExpiresAt,
		Redeemed:     p.Redeemed,
		Redemptions: slice.Map(p.Redemptions, func(idx int, src domain.Redemption) Redemption {
			return Redemption{Uid: src.Uid, UsedAt: src.UsedAt}
		}),
		Ctime: p.Ctime,
		Utime: p.Utime,
	}
}

func newPromocodes(ps []domain.Promocode) []Promocode {
	return slice.Map(ps, func(idx int, src domain.Promocode) Promocode {
		return newPromocode(src)
	})
}

type AvailableResp struct {
	Available bool       `json:"available"`
	Promocode *Promocode `json:"promocode,omitempty"`
}

type CodesResp struct {
	Codes []string `json:"codes"`
}

type PromocodeList struct {
	Total int64       `json:"total"`
	List  []Promocode `json:"list"`
}

type ClearResp struct {
	Cleared int64 `json:"cleared"`
}
