package main

//**********************************************************
// stat responses
//**********************************************************

type BusResponse struct {
	RequestID       int     `json:"request_id"`
	Curvature       float64 `json:"curvature"`
	RouteLength     int     `json:"route_length"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
}

type StopResponse struct {
	RequestID int      `json:"request_id"`
	Buses     []string `json:"buses"`
}

type RouteResponse struct {
	RequestID int     `json:"request_id"`
	TotalTime float64 `json:"total_time"`
	Items     []any   `json:"items"`
}

type WaitItem struct {
	StopName string  `json:"stop_name"`
	Time     float64 `json:"time"`
	Type     string  `json:"type"`
}

type RideItem struct {
	Bus       string  `json:"bus"`
	SpanCount int32   `json:"span_count"`
	Time      float64 `json:"time"`
	Type      string  `json:"type"`
}

type MapResponse struct {
	RequestID int    `json:"request_id"`
	Map       string `json:"map"`
}

type ErrorResponse struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

func NewErrorResponse(request_id int, message string) ErrorResponse {
	return ErrorResponse{
		RequestID:    request_id,
		ErrorMessage: message,
	}
}
