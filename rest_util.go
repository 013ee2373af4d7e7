package main

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
)

func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type Result struct {
	result any
	status int
	// set for non-json results
	content_type string
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

// Raw writes the value as is with the given content type.
func Raw(value string, content_type string) Result {
	return Result{
		result:       value,
		status:       http.StatusOK,
		content_type: content_type,
	}
}

func BadRequest(message string) Result {
	return Result{
		result: message,
		status: http.StatusBadRequest,
	}
}

func NotFound(message string) Result {
	return Result{
		result: message,
		status: http.StatusNotFound,
	}
}

func InternalError(message string) Result {
	return Result{
		result: message,
		status: http.StatusInternalServerError,
	}
}

type HTTPError struct {
	Path    string `json:"path"`
	Message any    `json:"message"`
}

// MapGet binds url params and query values to the json-tagged fields of F.
// Url params take precedence.
func MapGet[F any](app chi.Router, path string, handler func(F) Result) {
	var val F
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := NewList[Triple[int, string, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(MakeTriple(i, tag, reflect.Bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(MakeTriple(i, tag, reflect.Int))
		case reflect.Float32, reflect.Float64:
			fields.Add(MakeTriple(i, tag, reflect.Float64))
		case reflect.String:
			fields.Add(MakeTriple(i, tag, reflect.String))
		}
	}
	app.Get(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("GET " + r.URL.Path)
		query := r.URL.Query()
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			index := field.A
			name := field.B
			kind := field.C
			value := chi.URLParam(r, name)
			if value == "" {
				value = query.Get(name)
			}
			if value == "" {
				continue
			}
			f := t.Field(index)
			switch kind {
			case reflect.Bool:
				b, err := strconv.ParseBool(value)
				if err != nil {
					WriteResponse(w, HTTPError{path, "invalid " + name}, http.StatusBadRequest)
					return
				}
				f.SetBool(b)
			case reflect.Int:
				num, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					WriteResponse(w, HTTPError{path, "invalid " + name}, http.StatusBadRequest)
					return
				}
				f.SetInt(num)
			case reflect.Float64:
				num, err := strconv.ParseFloat(value, 64)
				if err != nil {
					WriteResponse(w, HTTPError{path, "invalid " + name}, http.StatusBadRequest)
					return
				}
				f.SetFloat(num)
			case reflect.String:
				f.SetString(value)
			}
		}
		value := t.Interface().(F)
		res := handler(value)
		if res.status != http.StatusOK {
			slog.Warn("failed GET " + r.URL.Path)
			WriteResponse(w, HTTPError{path, res.result}, res.status)
			return
		}
		if res.content_type != "" {
			w.Header().Set("Content-Type", res.content_type)
			w.WriteHeader(res.status)
			w.Write([]byte(res.result.(string)))
			return
		}
		WriteResponse(w, res.result, res.status)
	})
}
