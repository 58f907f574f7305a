package model

// Participant 一名学生在一个活动中的报名记录
// (activity_id, email) 唯一索引兜底并发下的重复报名
type Participant struct {
	Model
	Email      string `gorm:"type:varchar(200);not null;uniqueIndex:idx_participant_activity_email" json:"email"`
	ActivityID uint   `gorm:"not null;index;uniqueIndex:idx_participant_activity_email" json:"activity_id"`
}

func (Participant) TableName() string {
	return "participants"
}
