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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/pkg/errors"
)

var ErrPromocodeNotFound = errors.New("缓存中没有优惠码")

// PromocodeCache 缓存的只是某一时刻的快照，任何修改之后都要删除
//
//go:generate mockgen -source=./promocode.go -package=cachemocks -destination=mocks/promocode.mock.go PromocodeCache
type PromocodeCache interface {
	Get(ctx context.Context, code string) (domain.Promocode, error)
	Set(ctx context.Context, p domain.Promocode) error
	Del(ctx context.Context, code string) error
}

type PromocodeECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewPromocodeECache(ec ecache.Cache, expiration time.Duration) PromocodeCache {
	return &PromocodeECache{
		ec: &ecache.NamespaceCache{
			Namespace: "promocode:",
			C:         ec,
		},
		expiration: expiration,
	}
}

func (c *PromocodeECache) Get(ctx context.Context, code string) (domain.Promocode, error) {
	val := c.ec.Get(ctx, c.key(code))
	if val.KeyNotFound() {
		return domain.Promocode{}, ErrPromocodeNotFound
	}
	str, err := val.AsString()
	if err != nil {
		return domain.Promocode{}, errors.Wrap(err, "查询缓存出错")
	}
	var p domain.Promocode
	if err = json.Unmarshal([]byte(str), &p); err != nil {
		return domain.Promocode{}, errors.Wrap(err, "反序列化优惠码失败")
	}
	return p, nil
}

func (c *PromocodeECache) Set(ctx context.Context, p domain.Promocode) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "序列化优惠码失败")
	}
	return c.ec.Set(ctx, c.key(p.Code), string(data), c.expiration)
}

func (c *PromocodeECache) Del(ctx context.Context, code string) error {
	_, err := c.ec.Delete(ctx, c.key(code))
	return err
}

// 注意 Namespace 设置
func (c *PromocodeECache) key(code string) string {
	return fmt.Sprintf("code:%s", code)
}
