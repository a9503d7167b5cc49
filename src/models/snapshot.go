package models

import "time"

// PortalForm สิ่งที่ portal ต้องใช้แสดงฟอร์มให้ผู้ตอบ
type PortalForm struct {
	Config    EventConfig `json:"config"`
	Classes   []string    `json:"classes"`
	ClassName string      `json:"className,omitempty"`
	Questions []Question  `json:"questions"`
}

// DashboardSnapshot ภาพรวมที่ dashboard ได้รับทุกครั้งที่มีการเปลี่ยนแปลง
type DashboardSnapshot struct {
	Config    EventConfig `json:"config"`
	Classes   []Class     `json:"classes"`
	Questions []Question  `json:"questions"`
	Report    Report      `json:"report"`
	At        time.Time   `json:"at"`
}
