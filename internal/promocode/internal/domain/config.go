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
	"github.com/go-playground/validator/v10"
)

const (
	DefaultMask            = "****-****"
	DefaultCharacters      = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	DefaultDelimiter       = "-"
	DefaultPromocodesTable = "promocodes"
	DefaultPivotTable      = "promocode_user"
	DefaultForeignPivotKey = "promocode_id"
	DefaultRelatedPivotKey = "user_id"
	defaultCreateRetries   = 3
	defaultClearBatchSize  = 100
)

var validate = validator.New()

type Config struct {
	Mask       string `yaml:"mask" validate:"required"`
	Characters string `yaml:"characters" validate:"required"`
	Prefix     string `yaml:"prefix"`
	Suffix     string `yaml:"suffix"`
	Delimiter  string `yaml:"delimiter"`
	// MaxAttempts 单个兑换码连续生成重复的次数上限，0 表示不限
	MaxAttempts int `yaml:"maxAttempts" validate:"gte=0"`
	// CreateRetries 落库时遇到唯一索引冲突后重新生成的次数
	CreateRetries  int            `yaml:"createRetries" validate:"gte=0"`
	ClearBatchSize int            `yaml:"clearBatchSize" validate:"gt=0"`
	Database       DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	PromocodesTable string `yaml:"promocodesTable" validate:"required"`
	PivotTable      string `yaml:"pivotTable" validate:"required,nefield=PromocodesTable"`
	ForeignPivotKey string `yaml:"foreignPivotKey" validate:"required"`
	RelatedPivotKey string `yaml:"relatedPivotKey" validate:"required,nefield=ForeignPivotKey"`
}

func DefaultConfig() Config {
	return Config{
		Mask:           DefaultMask,
		Characters:     DefaultCharacters,
		Delimiter:      DefaultDelimiter,
		CreateRetries:  defaultCreateRetries,
		ClearBatchSize: defaultClearBatchSize,
		Database: DatabaseConfig{
			PromocodesTable: DefaultPromocodesTable,
			PivotTable:      DefaultPivotTable,
			ForeignPivotKey: DefaultForeignPivotKey,
			RelatedPivotKey: DefaultRelatedPivotKey,
		},
	}
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

func (c Config) Pattern() Pattern {
	return Pattern{
		Mask:       c.Mask,
		Characters: c.Characters,
		Prefix:     c.Prefix,
		Suffix:     c.Suffix,
		Delimiter:  c.Delimiter,
	}
}

// Pattern 兑换码的生成规则，mask 中的 * 会被替换为 Characters 里的随机字符
type Pattern struct {
	Mask       string
	Characters string
	Prefix     string
	Suffix     string
	Delimiter  string
}

// PatternOverride 单次生成时覆盖配置的规则，nil 表示沿用配置
type PatternOverride struct {
	Mask       *string
	Characters *string
	Prefix     *string
	Suffix     *string
	Delimiter  *string
}

func (p Pattern) Merge(o PatternOverride) Pattern {
	res := p
	if o.Mask != nil {
		res.Mask = *o.Mask
	}
	if o.Characters != nil {
		res.Characters = *o.Characters
	}
	if o.Prefix != nil {
		res.Prefix = *o.Prefix
	}
	if o.Suffix != nil {
		res.Suffix = *o.Suffix
	}
	if o.Delimiter != nil {
		res.Delimiter = *o.Delimiter
	}
	return res
}
