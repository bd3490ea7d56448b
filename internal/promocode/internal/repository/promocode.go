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

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository/cache"
	"github.com/ecodeclub/promocode/internal/promocode/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrPromocodeNotFound    = dao.ErrPromocodeNotFound
	ErrDuplicateCode        = dao.ErrDuplicateCode
	ErrPromocodeUnavailable = dao.ErrPromocodeUnavailable
	ErrPromocodeUsed        = dao.ErrPromocodeUsed
)

//go:generate mockgen -source=./promocode.go -package=repomocks -destination=mocks/promocode.mock.go PromocodeRepository
type PromocodeRepository interface {
	Create(ctx context.Context, ps []domain.Promocode) ([]domain.Promocode, error)
	FindByCode(ctx context.Context, code string) (domain.Promocode, error)
	// FindSnapshot 优先从缓存中读取，结果可能略微滞后
	FindSnapshot(ctx context.Context, code string) (domain.Promocode, error)
	// FindDetail 带上全部兑换记录
	FindDetail(ctx context.Context, code string) (domain.Promocode, error)
	FindDeletedByCode(ctx context.Context, code string) (domain.Promocode, error)
	LiveCodes(ctx context.Context) ([]string, error)
	ListAll(ctx context.Context) ([]domain.Promocode, error)
	ListAfter(ctx context.Context, lastID int64, limit int) ([]domain.Promocode, error)
	List(ctx context.Context, offset, limit int) ([]domain.Promocode, error)
	Total(ctx context.Context) (int64, error)

	Redeem(ctx context.Context, p domain.Promocode, uid, now int64) (domain.Promocode, error)
	Disable(ctx context.Context, p domain.Promocode, now int64) error
	Delete(ctx context.Context, p domain.Promocode) error
	Restore(ctx context.Context, p domain.Promocode) error
}

type promocodeRepository struct {
	dao   dao.PromocodeDAO
	cache cache.PromocodeCache
	// evictDelay 修改之后延迟再删一次缓存，0 表示不延迟删除
	evictDelay time.Duration
	logger     *elog.Component
}

func NewPromocodeRepository(d dao.PromocodeDAO, c cache.PromocodeCache, evictDelay time.Duration) PromocodeRepository {
	return &promocodeRepository{
		dao:        d,
		cache:      c,
		evictDelay: evictDelay,
		logger:     elog.DefaultLogger,
	}
}

func (r *promocodeRepository) Create(ctx context.Context, ps []domain.Promocode) ([]domain.Promocode, error) {
	entities, err := r.dao.Create(ctx, slice.Map(ps, func(idx int, src domain.Promocode) dao.Promocode {
		return r.toEntity(src)
	}))
	if err != nil {
		return nil, err
	}
	return r.toDomains(entities), nil
}

func (r *promocodeRepository) FindByCode(ctx context.Context, code string) (domain.Promocode, error) {
	p, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Promocode{}, err
	}
	return r.toDomain(p), nil
}

func (r *promocodeRepository) FindSnapshot(ctx context.Context, code string) (domain.Promocode, error) {
	p, err := r.cache.Get(ctx, code)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, cache.ErrPromocodeNotFound) {
		r.logger.Warn("从缓存中读取优惠码失败", elog.String("code", code), elog.FieldErr(err))
	}
	p, err = r.FindByCode(ctx, code)
	if err != nil {
		return domain.Promocode{}, err
	}
	if err = r.cache.Set(ctx, p); err != nil {
		r.logger.Error("缓存优惠码失败", elog.String("code", code), elog.FieldErr(err))
	}
	return p, nil
}

func (r *promocodeRepository) FindDetail(ctx context.Context, code string) (domain.Promocode, error) {
	p, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Promocode{}, err
	}
	redemptions, err := r.dao.FindRedemptions(ctx, p.Id)
	if err != nil {
		return domain.Promocode{}, err
	}
	res := r.toDomain(p)
	res.Redemptions = r.toRedemptions(redemptions)
	return res, nil
}

func (r *promocodeRepository) FindDeletedByCode(ctx context.Context, code string) (domain.Promocode, error) {
	p, err := r.dao.FindDeletedByCode(ctx, code)
	if err != nil {
		return domain.Promocode{}, err
	}
	return r.toDomain(p), nil
}

func (r *promocodeRepository) LiveCodes(ctx context.Context) ([]string, error) {
	return r.dao.ListCodes(ctx)
}

func (r *promocodeRepository) ListAll(ctx context.Context) ([]domain.Promocode, error) {
	ps, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return r.toDomains(ps), nil
}

func (r *promocodeRepository) ListAfter(ctx context.Context, lastID int64, limit int) ([]domain.Promocode, error) {
	ps, err := r.dao.ListAfter(ctx, lastID, limit)
	if err != nil {
		return nil, err
	}
	return r.toDomains(ps), nil
}

func (r *promocodeRepository) List(ctx context.Context, offset, limit int) ([]domain.Promocode, error) {
	ps, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return r.toDomains(ps), nil
}

func (r *promocodeRepository) Total(ctx context.Context) (int64, error) {
	return r.dao.Count(ctx)
}

func (r *promocodeRepository) Redeem(ctx context.Context, p domain.Promocode, uid, now int64) (domain.Promocode, error) {
	entity, redemptions, err := r.dao.Redeem(ctx, p.ID, uid, now)
	if err != nil {
		return domain.Promocode{}, err
	}
	r.evict(ctx, p.Code)
	res := r.toDomain(entity)
	res.Redemptions = r.toRedemptions(redemptions)
	return res, nil
}

func (r *promocodeRepository) Disable(ctx context.Context, p domain.Promocode, now int64) error {
	err := r.dao.Update(ctx, p.ID, map[string]any{
		"expires_at": now,
		"quantity":   0,
	})
	if err != nil {
		return err
	}
	r.evict(ctx, p.Code)
	return nil
}

func (r *promocodeRepository) Delete(ctx context.Context, p domain.Promocode) error {
	if err := r.dao.Purge(ctx, p.ID); err != nil {
		return err
	}
	r.evict(ctx, p.Code)
	return nil
}

func (r *promocodeRepository) Restore(ctx context.Context, p domain.Promocode) error {
	if err := r.dao.Restore(ctx, p.ID); err != nil {
		return err
	}
	r.evict(ctx, p.Code)
	return nil
}

// evict 数据库已经提交，删除缓存失败只记录日志，缓存会自然过期。
// FindSnapshot 可能在删除之前读到旧数据、在删除之后才写回缓存，所以过一会儿再删一次
func (r *promocodeRepository) evict(ctx context.Context, code string) {
	r.del(ctx, code)
	if r.evictDelay <= 0 {
		return
	}
	time.AfterFunc(r.evictDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		r.del(ctx, code)
	})
}

func (r *promocodeRepository) del(ctx context.Context, code string) {
	if err := r.cache.Del(ctx, code); err != nil {
		r.logger.Error("删除优惠码缓存失败", elog.String("code", code), elog.FieldErr(err))
	}
}

func (r *promocodeRepository) toDomains(ps []dao.Promocode) []domain.Promocode {
	return slice.Map(ps, func(idx int, src dao.Promocode) domain.Promocode {
		return r.toDomain(src)
	})
}

func (r *promocodeRepository) toDomain(p dao.Promocode) domain.Promocode {
	res := domain.Promocode{
		ID:           p.Id,
		Code:         p.Code,
		Payload:      p.Payload.Val,
		Disposable:   p.IsDisposable,
		AuthRequired: p.AuthRequired,
		ExpiresAt:    p.ExpiresAt.Int64,
		Redeemed:     p.Redeemed,
		DeletedAt:    p.DeletedAt,
		Ctime:        p.Ctime,
		Utime:        p.Utime,
	}
	if p.Quantity.Valid {
		quantity := p.Quantity.Int64
		res.Quantity = &quantity
	}
	return res
}

func (r *promocodeRepository) toEntity(p domain.Promocode) dao.Promocode {
	res := dao.Promocode{
		Id:   p.ID,
		Code: p.Code,
		Payload: sqlx.JsonColumn[map[string]any]{
			Val:   p.Payload,
			Valid: p.Payload != nil,
		},
		IsDisposable: p.Disposable,
		AuthRequired: p.AuthRequired,
		ExpiresAt:    sql.NullInt64{Int64: p.ExpiresAt, Valid: p.ExpiresAt > 0},
		Redeemed:     p.Redeemed,
		DeletedAt:    p.DeletedAt,
	}
	if p.Quantity != nil {
		res.Quantity = sql.NullInt64{Int64: *p.Quantity, Valid: true}
	}
	return res
}

func (r *promocodeRepository) toRedemptions(rs []dao.PromocodeUser) []domain.Redemption {
	return slice.Map(rs, func(idx int, src dao.PromocodeUser) domain.Redemption {
		return domain.Redemption{
			ID:          src.Id,
			PromocodeID: src.PromocodeId,
			Uid:         src.UserId,
			UsedAt:      src.UsedAt,
		}
	})
}
