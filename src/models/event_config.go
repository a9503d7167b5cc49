package models

import "time"

// EventConfigID _id ของเอกสาร singleton ใน collection settings
const EventConfigID = "eventConfig"

// EventConfig การตั้งค่า portal (เปิด/ปิด, branding, ข้อความ)
type EventConfig struct {
	ID         string     `json:"-" bson:"_id,omitempty"`
	Title      string     `json:"title" bson:"title" example:"TanyaPintar Siswa"`
	Desc       string     `json:"desc" bson:"desc" example:"Silakan isi pertanyaan."`
	IsOpen     bool       `json:"isOpen" bson:"isOpen"`
	BrandColor string     `json:"brandColor" bson:"brandColor" example:"#4F46E5"`
	LogoURL    *string    `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	CloseAt    *time.Time `json:"closeAt,omitempty" bson:"closeAt,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// EventConfigRequest body สำหรับบันทึก config ทั้งเอกสาร
type EventConfigRequest struct {
	Title      string     `json:"title" validate:"required,notblank,max=200"`
	Desc       string     `json:"desc" validate:"max=2000"`
	IsOpen     bool       `json:"isOpen"`
	BrandColor string     `json:"brandColor" validate:"omitempty,hexcolor"`
	LogoURL    *string    `json:"logoUrl" validate:"omitempty,url"`
	CloseAt    *time.Time `json:"closeAt"`
}

// DefaultEventConfig ค่าเริ่มต้นเมื่อยังไม่มีเอกสารใน DB
func DefaultEventConfig() EventConfig {
	return EventConfig{
		ID:         EventConfigID,
		Title:      "TanyaPintar Siswa",
		Desc:       "Silakan isi pertanyaan.",
		IsOpen:     true,
		BrandColor: "#4F46E5",
	}
}

// SetOpenRequest body สำหรับเปิด/ปิด portal
type SetOpenRequest struct {
	IsOpen *bool `json:"isOpen" validate:"required"`
}
