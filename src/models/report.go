package models

import "time"

// ClassParticipation จำนวนคำตอบต่อ class
type ClassParticipation struct {
	Name  string `json:"name" example:"X-IPA-1"`
	Count int    `json:"count" example:"12"`
}

// RatingAverage ค่าเฉลี่ยของคำถามแบบ rating
type RatingAverage struct {
	QuestionID string  `json:"questionId"`
	Text       string  `json:"text"`
	Average    float64 `json:"average" example:"4.2"`
	Display    string  `json:"display" example:"4.2"`
	Responses  int     `json:"responses"`
}

// ClassScore ค่าเฉลี่ย rating รวมของ class (leaderboard)
type ClassScore struct {
	Name    string  `json:"name"`
	Average float64 `json:"average"`
	Display string  `json:"display"`
	Ratings int     `json:"ratings"`
}

// DashboardSummary ตัวเลขสรุปหน้าแรกของ dashboard
type DashboardSummary struct {
	TotalResponses     int     `json:"totalResponses"`
	AvgPerClass        float64 `json:"avgPerClass"`
	AvgPerClassDisplay string  `json:"avgPerClassDisplay"`
	ActiveQuestions    int     `json:"activeQuestions"`
	Classes            int     `json:"classes"`
}

// Report ผลรวมทั้งหมดที่คำนวณใหม่จาก snapshot
type Report struct {
	Summary        DashboardSummary     `json:"summary"`
	Participation  []ClassParticipation `json:"participation"`
	RatingAverages []RatingAverage      `json:"ratingAverages"`
	Leaderboard    []ClassScore         `json:"leaderboard"`
	GeneratedAt    time.Time            `json:"generatedAt"`
}

// AnswerView คำตอบหนึ่งข้อที่ join กับ catalog แล้ว
type AnswerView struct {
	QuestionID   string       `json:"questionId"`
	QuestionText string       `json:"questionText"`
	Type         QuestionType `json:"type,omitempty"`
	Value        interface{}  `json:"value"`
	Deleted      bool         `json:"deleted"`
}

// SubmissionView submission พร้อมคำตอบที่อ่านได้
type SubmissionView struct {
	Submission
	AnswerViews []AnswerView `json:"answerViews"`
}
