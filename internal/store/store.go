// Package store 持久化活动与报名记录，所有方法都在调用方传入的 context 上开启独立会话
package store

import (
	"context"
	"errors"
	"strings"

	"mergington-activities/internal/model"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrActivityExists      = errors.New("activity already exists")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("participant already exists")
)

// Store 数据库句柄，在进程启动时构造一次并显式传给各模块
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Init 建表，重复调用无副作用
func (s *Store) Init(ctx context.Context) error {
	return s.session(ctx).AutoMigrate(&model.Activity{}, &model.Participant{})
}

// Transaction fn 返回 nil 时提交，返回错误或 panic 时回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// SeedIfEmpty 活动表为空时写入默认活动，返回是否写入
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	seeded := false
	err := s.Transaction(ctx, func(tx *Store) error {
		var count int64
		if err := tx.session(ctx).Model(&model.Activity{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		defaults := model.DefaultActivities()
		if err := tx.session(ctx).Create(&defaults).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func orderedParticipants(db *gorm.DB) *gorm.DB {
	return db.Order("participants.id ASC")
}

// ListActivities 返回全部活动及其报名名单（按报名先后）
func (s *Store) ListActivities(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	err := s.session(ctx).
		Preload("Participants", orderedParticipants).
		Order("activities.id ASC").
		Find(&activities).Error
	return activities, err
}

// FindActivity 按名称精确查找
func (s *Store) FindActivity(ctx context.Context, name string) (*model.Activity, error) {
	return s.findActivity(s.session(ctx), name)
}

// FindActivityForUpdate 同 FindActivity，并在支持的数据库上对该行加写锁
// 只在事务内有意义；sqlite 不支持行锁，由单连接保证串行
func (s *Store) FindActivityForUpdate(ctx context.Context, name string) (*model.Activity, error) {
	return s.findActivity(s.session(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), name)
}

func (s *Store) findActivity(db *gorm.DB, name string) (*model.Activity, error) {
	var activity model.Activity
	err := db.Preload("Participants", orderedParticipants).
		Where("name = ?", name).
		First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// CountParticipants 从库中实时统计报名人数
func (s *Store) CountParticipants(ctx context.Context, activity *model.Activity) (int64, error) {
	var count int64
	err := s.session(ctx).Model(&model.Participant{}).
		Where("activity_id = ?", activity.ID).
		Count(&count).Error
	return count, err
}

// AddParticipant 写入报名记录，唯一性与容量由调用方先行校验
func (s *Store) AddParticipant(ctx context.Context, activity *model.Activity, email string) (*model.Participant, error) {
	participant := model.Participant{
		Email:      email,
		ActivityID: activity.ID,
	}
	if err := s.session(ctx).Create(&participant).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrParticipantExists
		}
		return nil, err
	}
	activity.Participants = append(activity.Participants, participant)
	return &participant, nil
}

// RemoveParticipant 删除报名记录，调用方应已确认其存在
func (s *Store) RemoveParticipant(ctx context.Context, activity *model.Activity, email string) error {
	result := s.session(ctx).
		Where("activity_id = ? AND email = ?", activity.ID, email).
		Delete(&model.Participant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	kept := activity.Participants[:0]
	for _, p := range activity.Participants {
		if p.Email != email {
			kept = append(kept, p)
		}
	}
	activity.Participants = kept
	return nil
}

func (s *Store) CreateActivity(ctx context.Context, activity *model.Activity) error {
	if err := s.session(ctx).Omit(clause.Associations).Create(activity).Error; err != nil {
		if IsDuplicate(err) {
			return ErrActivityExists
		}
		return err
	}
	return nil
}

// DeleteActivity 在同一事务中先删报名记录再删活动，不依赖外键级联
// 返回被一并删除的报名数
func (s *Store) DeleteActivity(ctx context.Context, name string) (int64, error) {
	var removed int64
	err := s.Transaction(ctx, func(tx *Store) error {
		activity, err := tx.FindActivityForUpdate(ctx, name)
		if err != nil {
			return err
		}
		result := tx.session(ctx).
			Where("activity_id = ?", activity.ID).
			Delete(&model.Participant{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return tx.session(ctx).Delete(&model.Activity{}, activity.ID).Error
	})
	return removed, err
}

// IsDuplicate 判断是否违反唯一约束，兼容 sqlite 与 mysql
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
