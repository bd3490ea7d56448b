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
	"database/sql"

	"github.com/ecodeclub/ekit/sqlx"
)

// Promocode 表名由配置决定，所以这里不定义 TableName
type Promocode struct {
	Id       int64                           `gorm:"primaryKey;autoIncrement;comment:优惠码自增ID"`
	Code     string                          `gorm:"type:varchar(32);not null;uniqueIndex:uniq_code_deleted_at,priority:1;comment:优惠码"`
	Quantity sql.NullInt64                   `gorm:"comment:剩余可兑换次数,NULL表示不限次数"`
	Payload  sqlx.JsonColumn[map[string]any] `gorm:"type:text;comment:兑换后交给业务方的附加数据,JSON格式"`
	// IsDisposable 一次性优惠码
	IsDisposable bool          `gorm:"not null;default:false;comment:是否一次性"`
	AuthRequired bool          `gorm:"not null;default:false;comment:兑换时是否必须登录"`
	ExpiresAt    sql.NullInt64 `gorm:"index:idx_expires_at;comment:过期时间,毫秒时间戳,NULL表示永不过期"`
	Redeemed     int64         `gorm:"not null;default:0;comment:兑换记录条数"`
	DeletedAt    int64         `gorm:"not null;default:0;uniqueIndex:uniq_code_deleted_at,priority:2;comment:软删除时间,0表示未删除"`
	Ctime        int64
	Utime        int64
}

func (p Promocode) available(now int64) bool {
	if p.Quantity.Valid && p.Quantity.Int64 <= 0 {
		return false
	}
	return !p.ExpiresAt.Valid || p.ExpiresAt.Int64 > now
}

// PromocodeUser 兑换记录。两个关联字段的列名由配置决定，
// 读取时会被重命名为 promocode_id 和 user_id
type PromocodeUser struct {
	Id          int64 `gorm:"primaryKey;autoIncrement;comment:兑换记录自增ID"`
	PromocodeId int64 `gorm:"not null;index:idx_promocode_id;comment:优惠码ID"`
	UserId      int64 `gorm:"not null;index:idx_user_id;comment:兑换者ID,0表示匿名"`
	UsedAt      int64 `gorm:"not null;comment:兑换时间,毫秒时间戳"`
}
