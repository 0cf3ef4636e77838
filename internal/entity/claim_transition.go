package entity

type ClaimTransition struct {
	Base

	DrawID string      `gorm:"index;size:36"`
	Draw   DrawHistory `gorm:"foreignKey:DrawID"`

	FromStatus ClaimStatus `gorm:"size:16"`
	ToStatus   ClaimStatus `gorm:"size:16"`
	ActorID    string      `gorm:"size:64"`
	Note       string
}
