package profile

import "gorm.io/datatypes"

// SingletonID is the fixed primary key of the one profile row.
const SingletonID = 1

type Profile struct {
	ID                uint                        `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Name              string                      `gorm:"type:varchar(255);not null" json:"name" binding:"required"`
	YearsOfExperience int                         `gorm:"not null" json:"years_of_experience" binding:"gte=0"`
	Specializations   datatypes.JSONSlice[string] `json:"specializations" binding:"required"`
	Certifications    datatypes.JSONSlice[string] `json:"certifications" binding:"required"`
	Description       string                      `gorm:"type:text" json:"description" binding:"required"`
	Location          string                      `gorm:"type:varchar(255)" json:"location" binding:"required"`
	ContactPhone      string                      `gorm:"type:varchar(32)" json:"contact_phone" binding:"required"`
	ContactEmail      string                      `gorm:"type:varchar(255)" json:"contact_email" binding:"required,email"`
	GalleryImages     datatypes.JSONSlice[string] `json:"gallery_images"`
}

func (Profile) TableName() string { return "goldsmith_profile" }

// Article is an education entry. Stored articles replace the built-in set.
type Article struct {
	ID      string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Icon    string `gorm:"type:varchar(32)" json:"icon"`
}

func (Article) TableName() string { return "education_articles" }
