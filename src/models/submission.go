package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answers questionId -> string (text) หรือ int 1..5 (rating)
type Answers map[string]interface{}

// Submission คำตอบของผู้ตอบ 1 คน (ไม่มีการแก้ไขหลังบันทึก)
type Submission struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty" swaggertype:"string" example:"507f1f77bcf86cd799439011"`
	UserName  string             `json:"userName" bson:"userName" example:"Budi Santoso"`
	ClassName string             `json:"className" bson:"className" example:"X-IPA-1"`
	Answers   Answers            `json:"answers" bson:"answers" swaggertype:"object"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
}

// SubmitRequest body ที่ portal ส่งมา
type SubmitRequest struct {
	UserName  string                 `json:"userName" validate:"required,notblank,max=120" example:"Budi Santoso"`
	ClassName string                 `json:"className" validate:"required,notblank,max=64" example:"X-IPA-1"`
	Answers   map[string]interface{} `json:"answers" swaggertype:"object"`
}

// SubmissionFilter ตัวกรองรายการคำตอบในหน้า admin
type SubmissionFilter struct {
	ClassName string `query:"className" example:"X-IPA-1"`
	Search    string `query:"search" example:"budi"`
}

// AllClasses value of SubmissionFilter.ClassName that disables the class filter.
const AllClasses = "all"

// HasClass reports whether the filter narrows to one class.
func (f SubmissionFilter) HasClass() bool {
	c := strings.TrimSpace(f.ClassName)
	return c != "" && !strings.EqualFold(c, AllClasses)
}

// NumericValue converts a stored or decoded answer to a number. Strings are
// accepted when they parse as a number.
func NumericValue(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// RatingValue returns v as an integer rating in 1..5.
func RatingValue(v interface{}) (int, bool) {
	f, ok := NumericValue(v)
	if !ok || f != math.Trunc(f) || f < 1 || f > 5 {
		return 0, false
	}
	return int(f), true
}

// TextValue returns the trimmed text of a non-blank string answer.
func TextValue(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// FormatAnswer renders an answer for display or export. nil renders as "".
func FormatAnswer(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ClearSubmissionsRequest body สำหรับลบคำตอบทั้งหมด ต้องแนบรหัสยืนยัน
type ClearSubmissionsRequest struct {
	Code string `json:"code" validate:"required,notblank" example:"K7QX2M"`
}

// ResetCodeResponse รหัสยืนยันสำหรับลบคำตอบทั้งหมด
type ResetCodeResponse struct {
	Code      string    `json:"code" example:"K7QX2M"`
	ExpiresAt time.Time `json:"expiresAt"`
}
