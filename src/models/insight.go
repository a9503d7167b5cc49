package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InsightPending = "pending"
	InsightDone    = "done"
	InsightFailed  = "failed"
)

// Insight ผลวิเคราะห์คำตอบจาก AI
type Insight struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty" swaggertype:"string"`
	Status          string             `json:"status" bson:"status" example:"done"`
	Report          string             `json:"report" bson:"report"`
	SubmissionCount int                `json:"submissionCount" bson:"submissionCount"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	FinishedAt      *time.Time         `json:"finishedAt,omitempty" bson:"finishedAt,omitempty"`
}

// SuggestRequest body สำหรับขอคำถามจาก AI
type SuggestRequest struct {
	Topic string `json:"topic" validate:"required,notblank,max=200" example:"Kebersihan Kantin"`
}
