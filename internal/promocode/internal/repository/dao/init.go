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
	"fmt"

	"github.com/ecodeclub/promocode/internal/promocode/internal/domain"
	"github.com/ego-component/egorm"
)

func InitTables(db *egorm.Component, tables domain.DatabaseConfig) error {
	if err := db.Table(tables.PromocodesTable).AutoMigrate(&Promocode{}); err != nil {
		return fmt.Errorf("初始化优惠码表失败: %w", err)
	}
	return initPivotTable(db, tables)
}

func initPivotTable(db *egorm.Component, tables domain.DatabaseConfig) error {
	customKeys := tables.ForeignPivotKey != domain.DefaultForeignPivotKey ||
		tables.RelatedPivotKey != domain.DefaultRelatedPivotKey
	if customKeys && db.Migrator().HasTable(tables.PivotTable) {
		// 自定义列名的表只在第一次建出来，之后不再迁移
		return nil
	}
	pivot := db.Table(tables.PivotTable)
	if err := pivot.AutoMigrate(&PromocodeUser{}); err != nil {
		return fmt.Errorf("初始化兑换记录表失败: %w", err)
	}
	if !customKeys {
		return nil
	}
	m := pivot.Migrator()
	if tables.ForeignPivotKey != domain.DefaultForeignPivotKey {
		if err := m.RenameColumn(&PromocodeUser{}, domain.DefaultForeignPivotKey, tables.ForeignPivotKey); err != nil {
			return fmt.Errorf("重命名兑换记录表的优惠码列失败: %w", err)
		}
	}
	if tables.RelatedPivotKey != domain.DefaultRelatedPivotKey {
		if err := m.RenameColumn(&PromocodeUser{}, domain.DefaultRelatedPivotKey, tables.RelatedPivotKey); err != nil {
			return fmt.Errorf("重命名兑换记录表的用户列失败: %w", err)
		}
	}
	return nil
}
