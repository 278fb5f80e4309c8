package config

import "errors"

// 配置错误哨兵值，调用方可使用 errors.Is 判断
var (
	// ErrMissingField 必填字段缺失
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidValue 字段值非法（负数、空列表等）
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnknownUnit 引用了单位表中不存在的单位类型
	ErrUnknownUnit = errors.New("unknown unit type")
	// ErrLevelOutOfRange 单位等级超出等级表范围
	ErrLevelOutOfRange = errors.New("unit level out of range")
)
