package models

import "time"

type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Meta    *Meta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
		},
	}
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    code,
			Message: message,
		},
	}
}

// DashboardSummary backs the admin dashboard counters.
type DashboardSummary struct {
	PendingBookings     int `json:"pending_bookings"`
	ConfirmedBookings   int `json:"confirmed_bookings"`
	AssignedBookings    int `json:"assigned_bookings"`
	ImportInspections   int `json:"import_inspections"`
	FarmInspections     int `json:"farm_inspections"`
	SurveillanceRecords int `json:"surveillance_records"`
	ActiveInspectors    int `json:"active_inspectors"`
}
