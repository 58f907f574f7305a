package model

// Activity 课外活动，Name 全局唯一
type Activity struct {
	Model
	Name            string        `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Description     string        `gorm:"type:text" json:"description"`
	Schedule        string        `gorm:"type:varchar(200)" json:"schedule"`
	MaxParticipants int           `gorm:"not null;default:0" json:"max_participants"` // 0 表示不限人数
	Participants    []Participant `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"participants"`
}

func (Activity) TableName() string {
	return "activities"
}

// Unlimited 是否不限人数
func (a *Activity) Unlimited() bool {
	return a.MaxParticipants == 0
}

// HasParticipant 区分大小写精确匹配
func (a *Activity) HasParticipant(email string) bool {
	return a.FindParticipant(email) != nil
}

func (a *Activity) FindParticipant(email string) *Participant {
	for i := range a.Participants {
		if a.Participants[i].Email == email {
			return &a.Participants[i]
		}
	}
	return nil
}

// Emails 按报名顺序返回邮箱
func (a *Activity) Emails() []string {
	emails := make([]string, 0, len(a.Participants))
	for _, p := range a.Participants {
		emails = append(emails, p.Email)
	}
	return emails
}
