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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPromocodeNotFound    = gorm.ErrRecordNotFound
	ErrDuplicateCode        = errors.New("优惠码已存在")
	ErrPromocodeUnavailable = errors.New("优惠码已过期或次数已用完")
	ErrPromocodeUsed        = errors.New("一次性优惠码已被使用")
)

// PromocodeDAO 所有查询都只看未删除的优惠码，除非方法名里特别说明
type PromocodeDAO interface {
	// Transaction 在同一个事务里执行 fn，fn 里只能使用 tx
	Transaction(ctx context.Context, fn func(tx PromocodeDAO) error) error

	Create(ctx context.Context, codes []Promocode) ([]Promocode, error)
	FindByCode(ctx context.Context, code string) (Promocode, error)
	FindByID(ctx context.Context, id int64) (Promocode, error)
	// FindDeletedByCode 查找最近一次被删除的优惠码
	FindDeletedByCode(ctx context.Context, code string) (Promocode, error)
	ListAll(ctx context.Context) ([]Promocode, error)
	ListCodes(ctx context.Context) ([]string, error)
	// ListAfter 按照 id 升序，返回 id 大于 lastID 的 limit 条
	ListAfter(ctx context.Context, lastID int64, limit int) ([]Promocode, error)
	List(ctx context.Context, offset, limit int) ([]Promocode, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error

	AddRedemption(ctx context.Context, r PromocodeUser) error
	CountRedemptions(ctx context.Context, pid int64) (int64, error)
	FindRedemptions(ctx context.Context, pid int64) ([]PromocodeUser, error)
	RemoveAllRedemptions(ctx context.Context, pid int64) error

	// Redeem 扣减一次并写入兑换记录，返回兑换后的优惠码和它全部的兑换记录
	Redeem(ctx context.Context, id, uid, now int64) (Promocode, []PromocodeUser, error)
	// Purge 软删除优惠码后删除兑换记录。先锁住优惠码这一行，
	// 并发的 Redeem 要么在它之前提交，要么看到已经删除
	Purge(ctx context.Context, id int64) error
}

type GORMPromocodeDAO struct {
	db     *egorm.Component
	tables domain.DatabaseConfig
}

func NewGORMPromocodeDAO(db *egorm.Component, tables domain.DatabaseConfig) PromocodeDAO {
	return &GORMPromocodeDAO{db: db, tables: tables}
}

func (g *GORMPromocodeDAO) withTx(tx *egorm.Component) *GORMPromocodeDAO {
	return &GORMPromocodeDAO{db: tx, tables: g.tables}
}

func (g *GORMPromocodeDAO) promocodes(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx).Table(g.tables.PromocodesTable)
}

func (g *GORMPromocodeDAO) live(ctx context.Context) *gorm.DB {
	return g.promocodes(ctx).Where("deleted_at = ?", 0)
}

func (g *GORMPromocodeDAO) pivot(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx).Table(g.tables.PivotTable)
}

func (g *GORMPromocodeDAO) byPromocode(pid int64) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: g.tables.ForeignPivotKey}, Value: pid}
}

func (g *GORMPromocodeDAO) Transaction(ctx context.Context, fn func(tx PromocodeDAO) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		return fn(g.withTx(tx))
	})
}

func (g *GORMPromocodeDAO) Create(ctx context.Context, codes []Promocode) ([]Promocode, error) {
	if len(codes) == 0 {
		return codes, nil
	}
	now := time.Now().UnixMilli()
	for i := range codes {
		codes[i].Ctime, codes[i].Utime = now, now
	}
	err := g.promocodes(ctx).Create(&codes).Error
	if err != nil {
		if g.isUniqueIndexError(err) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateCode, err)
		}
		return nil, err
	}
	return codes, nil
}

func (g *GORMPromocodeDAO) isUniqueIndexError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

func (g *GORMPromocodeDAO) FindByCode(ctx context.Context, code string) (Promocode, error) {
	var res Promocode
	err := g.live(ctx).Where("code = ?", code).First(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) FindByID(ctx context.Context, id int64) (Promocode, error) {
	var res Promocode
	err := g.live(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) FindDeletedByCode(ctx context.Context, code string) (Promocode, error) {
	var res Promocode
	err := g.promocodes(ctx).Where("code = ? AND deleted_at > ?", code, 0).
		Order("deleted_at DESC").Take(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) ListAll(ctx context.Context) ([]Promocode, error) {
	var res []Promocode
	err := g.live(ctx).Order("id ASC").Find(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) ListCodes(ctx context.Context) ([]string, error) {
	var res []string
	err := g.live(ctx).Pluck("code", &res).Error
	return res, err
}

func (g *GORMPromocodeDAO) ListAfter(ctx context.Context, lastID int64, limit int) ([]Promocode, error) {
	var res []Promocode
	err := g.live(ctx).Where("id > ?", lastID).
		Order("id ASC").Limit(limit).Find(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) List(ctx context.Context, offset, limit int) ([]Promocode, error) {
	var res []Promocode
	err := g.live(ctx).Order("id DESC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) Count(ctx context.Context) (int64, error) {
	var res int64
	err := g.live(ctx).Count(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) Update(ctx context.Context, id int64, fields map[string]any) error {
	fields["utime"] = time.Now().UnixMilli()
	res := g.live(ctx).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL 只统计真正发生变化的行，同一毫秒内重复更新时也是 0
		if _, err := g.FindByID(ctx, id); err != nil {
			return fmt.Errorf("%w: id=%d", err, id)
		}
	}
	return nil
}

func (g *GORMPromocodeDAO) Delete(ctx context.Context, id int64) error {
	p, err := g.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: id=%d", err, id)
	}
	// (code, deleted_at) 唯一，同一个兑换码的删除时间必须严格递增
	var latest int64
	err = g.promocodes(ctx).Select("COALESCE(MAX(deleted_at), 0)").
		Where("code = ?", p.Code).Scan(&latest).Error
	if err != nil {
		return err
	}
	return g.Update(ctx, id, map[string]any{
		"deleted_at": max(time.Now().UnixMilli(), latest+1),
		// 兑换记录随优惠码一起删除，计数也要清零
		"redeemed": 0,
	})
}

func (g *GORMPromocodeDAO) Restore(ctx context.Context, id int64) error {
	res := g.promocodes(ctx).Where("id = ? AND deleted_at > ?", id, 0).
		Updates(map[string]any{
			"deleted_at": 0,
			"utime":      time.Now().UnixMilli(),
		})
	if res.Error != nil {
		if g.isUniqueIndexError(res.Error) {
			return fmt.Errorf("%w: %w", ErrDuplicateCode, res.Error)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrPromocodeNotFound, id)
	}
	return nil
}

func (g *GORMPromocodeDAO) AddRedemption(ctx context.Context, r PromocodeUser) error {
	return g.pivot(ctx).Create(map[string]any{
		g.tables.ForeignPivotKey: r.PromocodeId,
		g.tables.RelatedPivotKey: r.UserId,
		"used_at":                r.UsedAt,
	}).Error
}

func (g *GORMPromocodeDAO) CountRedemptions(ctx context.Context, pid int64) (int64, error) {
	var res int64
	err := g.pivot(ctx).Where(g.byPromocode(pid)).Count(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) FindRedemptions(ctx context.Context, pid int64) ([]PromocodeUser, error) {
	var res []PromocodeUser
	err := g.pivot(ctx).
		Select(fmt.Sprintf("id, %s AS promocode_id, %s AS user_id, used_at",
			g.tables.ForeignPivotKey, g.tables.RelatedPivotKey)).
		Where(g.byPromocode(pid)).
		Order("id ASC").Find(&res).Error
	return res, err
}

func (g *GORMPromocodeDAO) RemoveAllRedemptions(ctx context.Context, pid int64) error {
	return g.pivot(ctx).Where(g.byPromocode(pid)).Delete(&PromocodeUser{}).Error
}

func (g *GORMPromocodeDAO) Redeem(ctx context.Context, id, uid, now int64) (Promocode, []PromocodeUser, error) {
	var (
		res         Promocode
		redemptions []PromocodeUser
	)
	err := g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		txDAO := g.withTx(tx)
		// 条件和 domain.Promocode.IsRedeemableAt 一致，并发兑换时由行锁串行化，
		// 后来者重新按照已提交的数据判断
		updateResult := txDAO.live(ctx).
			Where("id = ?", id).
			Where("(quantity IS NULL OR quantity > 0)").
			Where("(expires_at IS NULL OR expires_at > ?)", now).
			Where("(is_disposable = ? OR redeemed = 0)", false).
			Updates(map[string]any{
				// NULL - 1 仍然是 NULL，不限次数的优惠码不受影响
				"quantity": gorm.Expr("quantity - 1"),
				"redeemed": gorm.Expr("redeemed + 1"),
				"utime":    now,
			})
		if updateResult.Error != nil {
			return updateResult.Error
		}
		if updateResult.RowsAffected == 0 {
			return txDAO.redeemFailure(ctx, id, now)
		}
		err := txDAO.AddRedemption(ctx, PromocodeUser{
			PromocodeId: id,
			UserId:      uid,
			UsedAt:      now,
		})
		if err != nil {
			return fmt.Errorf("创建兑换记录失败: %w", err)
		}
		res, err = txDAO.FindByID(ctx, id)
		if err != nil {
			return err
		}
		redemptions, err = txDAO.FindRedemptions(ctx, id)
		return err
	})
	return res, redemptions, err
}

// redeemFailure 扣减失败时，按照最新的数据判断失败原因
func (g *GORMPromocodeDAO) redeemFailure(ctx context.Context, id, now int64) error {
	p, err := g.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.available(now) && p.IsDisposable && p.Redeemed > 0 {
		return fmt.Errorf("%w: code=%s", ErrPromocodeUsed, p.Code)
	}
	return fmt.Errorf("%w: code=%s", ErrPromocodeUnavailable, p.Code)
}

func (g *GORMPromocodeDAO) Purge(ctx context.Context, id int64) error {
	return g.Transaction(ctx, func(tx PromocodeDAO) error {
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
		if err := tx.RemoveAllRedemptions(ctx, id); err != nil {
			return fmt.Errorf("删除兑换记录失败: %w", err)
		}
		return nil
	})
}
