package models

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Status  int    `json:"status"`          // HTTP Status Code
	Code    string `json:"code,omitempty"`  // รหัส error สำหรับ frontend เช่น PORTAL_CLOSED
	Message string `json:"message"`         // รายละเอียดของ Error
	Missing int    `json:"missing,omitempty"`
}
