package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionType string

const (
	QuestionText   QuestionType = "text"
	QuestionRating QuestionType = "rating"
)

type TargetType string

const (
	TargetGlobal   TargetType = "global"
	TargetSpecific TargetType = "specific"
)

// Question pertanyaan survei
type Question struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty" swaggertype:"string" example:"507f1f77bcf86cd799439011"`
	Text          string             `json:"text" bson:"text" example:"Seberapa puas kamu dengan kantin?"`
	Type          QuestionType       `json:"type" bson:"type" example:"rating"`
	Active        bool               `json:"active" bson:"active"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	TargetType    TargetType         `json:"targetType" bson:"targetType" example:"global"`
	TargetClasses []string           `json:"targetClasses" bson:"targetClasses"`
}

// QuestionRequest body สำหรับสร้าง question
type QuestionRequest struct {
	Text          string       `json:"text" validate:"required,notblank,max=500"`
	Type          QuestionType `json:"type" validate:"required,oneof=text rating"`
	Active        *bool        `json:"active"`
	TargetType    TargetType   `json:"targetType" validate:"omitempty,oneof=global specific"`
	TargetClasses []string     `json:"targetClasses" validate:"omitempty,dive,notblank"`
}

// QuestionPatch body สำหรับแก้ไข question (ส่งเฉพาะ field ที่เปลี่ยน)
type QuestionPatch struct {
	Text          *string       `json:"text" validate:"omitempty,notblank,max=500"`
	Type          *QuestionType `json:"type" validate:"omitempty,oneof=text rating"`
	Active        *bool         `json:"active"`
	TargetType    *TargetType   `json:"targetType" validate:"omitempty,oneof=global specific"`
	TargetClasses []string      `json:"targetClasses" validate:"omitempty,dive,notblank"`
}

// QuestionSuggestion one item produced by the AI suggester.
type QuestionSuggestion struct {
	Text string       `json:"text"`
	Type QuestionType `json:"type"`
}

func (t QuestionType) Valid() bool {
	return t == QuestionText || t == QuestionRating
}

func (t TargetType) Valid() bool {
	return t == TargetGlobal || t == TargetSpecific
}
