package author

import (
	"time"
)

// Author 作者实体(聚合根)
// 设计说明:
// 1. Name不要求唯一,但图书登记按姓名查找作者时取第一条匹配
// 2. BirthDate只保留日期部分,入库前截断到当天零点
type Author struct {
	ID        uint
	Name      string    // 姓名
	BirthDate time.Time // 出生日期
	CreatedAt time.Time
	UpdatedAt time.Time
}

// minBirthDate 可接受的最早出生日期(不含当天)
var minBirthDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// truncateToDay 截断到当天零点
// 注意要在日期自身的时区里截断:Time.Truncate按UTC绝对时间取整,
// 非UTC输入会向前漂移一个日历日
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NewAuthor 创建新作者(工厂方法)
// 业务规则:出生日期必须晚于1900-01-01
func NewAuthor(name string, birthDate time.Time) (*Author, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !birthDate.After(minBirthDate) {
		return nil, ErrInvalidBirthDate
	}
	now := time.Now()
	return &Author{
		Name:      name,
		BirthDate: truncateToDay(birthDate),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
