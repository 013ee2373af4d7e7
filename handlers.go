package main

import (
	"errors"

	. "github.com/ttpr0/transit-catalogue/util"
)

//**********************************************************
// http handlers
//**********************************************************

// ErrorResult maps lookup failures to 404 and everything else to 500.
func ErrorResult(err error) Result {
	if errors.Is(err, ErrNotFound) {
		return NotFound(err.Error())
	}
	return InternalError(err.Error())
}

func HandleBusRequest(handler *RequestHandler, req BusRequestParams) Result {
	if req.Name == "" {
		return BadRequest("missing name")
	}
	resp, err := handler._BusResponse(0, req.Name)
	if err != nil {
		return ErrorResult(err)
	}
	return OK(resp)
}

func HandleStopRequest(handler *RequestHandler, req StopRequestParams) Result {
	if req.Name == "" {
		return BadRequest("missing name")
	}
	resp, err := handler._StopResponse(0, req.Name)
	if err != nil {
		return ErrorResult(err)
	}
	return OK(resp)
}

func HandleRouteRequest(handler *RequestHandler, req RouteRequestParams) Result {
	if req.From == "" || req.To == "" {
		return BadRequest("missing from or to")
	}
	resp, err := handler._RouteResponse(0, req.From, req.To)
	if err != nil {
		return ErrorResult(err)
	}
	return OK(resp)
}

func HandleMapRequest(handler *RequestHandler) Result {
	return Raw(handler.RenderMap(), "image/svg+xml")
}
