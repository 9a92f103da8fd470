package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookdepot/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
		&StockRecordModel{},
		&HistoryModel{},
	)
}

// AuthorModel GORM作者模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/author/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:100;not null;comment:姓名"`
	BirthDate time.Time `gorm:"not null;comment:出生日期"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. Barcode有唯一索引,是库存操作与批量导入的定位键
// 2. AuthorID关联authors表,不使用ORM关联加载
type BookModel struct {
	ID          uint      `gorm:"primaryKey"`
	Barcode     string    `gorm:"uniqueIndex;size:50;not null;comment:条码"`
	Title       string    `gorm:"index;size:200;not null;comment:书名"`
	PublishYear int       `gorm:"comment:出版年份"`
	AuthorID    uint      `gorm:"index;not null;comment:作者ID"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// StockRecordModel GORM库存记录模型
// 设计说明:
// 1. book_id唯一,每本图书至多一条记录,首次库存操作时惰性创建
// 2. 数量变更必须走行锁事务(见stockRepository.ApplyDelta),
//    不允许绕过台账直接UPDATE
type StockRecordModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"uniqueIndex;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;default:0;comment:当前数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:最后修改时间"`
}

// TableName 指定表名
func (StockRecordModel) TableName() string {
	return "stock_records"
}

// HistoryModel GORM库存历史模型
// 设计说明:
// 1. 只增不改(Append-Only),没有Update/Delete路径
// 2. Timestamp与当次变更后stock_records.updated_at相同
// 3. 复合索引(book_id, timestamp)覆盖按图书的时间倒序查询
type HistoryModel struct {
	ID             uint      `gorm:"primaryKey"`
	BookID         uint      `gorm:"index:idx_book_time;not null;comment:图书ID"`
	SignedQuantity int       `gorm:"not null;comment:带符号的变更数量"`
	Timestamp      time.Time `gorm:"index:idx_book_time;index;not null;comment:变更时间"`
}

// TableName 指定表名
func (HistoryModel) TableName() string {
	return "stock_history"
}
