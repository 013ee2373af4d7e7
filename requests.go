package main

//**********************************************************
// http request params
//**********************************************************

type BusRequestParams struct {
	Name string `json:"name"`
}

type StopRequestParams struct {
	Name string `json:"name"`
}

type RouteRequestParams struct {
	From string `json:"from"`
	To   string `json:"to"`
}
