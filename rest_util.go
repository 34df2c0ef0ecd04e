package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slog"
)

func ReadRequestBody[T any](r *http.Request) (T, error) {
	var req T
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return req, err
	}
	err = json.Unmarshal(data, &req)
	return req, err
}

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
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func NotFound[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusNotFound,
	}
}

func MapPost[F any](app chi.Router, path string, handler func(context.Context, F) Result) {
	app.Post(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("POST " + path)
		body, err := ReadRequestBody[F](r)
		if err != nil {
			slog.Warn(fmt.Sprintf("failed POST %v: %v", path, err))
			WriteResponse(w, NewErrorResponse(0, err.Error()), http.StatusBadRequest)
			return
		}
		res := handler(r.Context(), body)
		if res.status != http.StatusOK {
			slog.Debug(fmt.Sprintf("POST %v finished with status %v", path, res.status))
		}
		WriteResponse(w, res.result, res.status)
	})
}

type _QueryField struct {
	index int
	name  string
	kind  reflect.Kind
}

// Binds query parameters to the json tagged fields of F. Unparsable
// values are rejected with 400.
func MapGet[F any](app chi.Router, path string, handler func(context.Context, F) Result) {
	var val F
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := NewList[_QueryField](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(_QueryField{i, tag, reflect.Bool})
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(_QueryField{i, tag, reflect.Int})
		case reflect.Float32, reflect.Float64:
			fields.Add(_QueryField{i, tag, reflect.Float64})
		case reflect.String:
			fields.Add(_QueryField{i, tag, reflect.String})
		}
	}
	app.Get(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("GET " + path)
		query := r.URL.Query()
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			value := query.Get(field.name)
			if value == "" {
				continue
			}
			f := t.Field(field.index)
			var err error
			switch field.kind {
			case reflect.Bool:
				var b bool
				b, err = strconv.ParseBool(value)
				f.SetBool(b)
			case reflect.Int:
				var num int64
				num, err = strconv.ParseInt(value, 10, 64)
				f.SetInt(num)
			case reflect.Float64:
				var num float64
				num, err = strconv.ParseFloat(value, 64)
				f.SetFloat(num)
			case reflect.String:
				f.SetString(value)
			}
			if err != nil {
				WriteResponse(w, NewErrorResponse(0, fmt.Sprintf("invalid parameter %v: %v", field.name, value)), http.StatusBadRequest)
				return
			}
		}
		res := handler(r.Context(), t.Interface().(F))
		if res.status != http.StatusOK {
			slog.Debug(fmt.Sprintf("GET %v finished with status %v", path, res.status))
		}
		WriteResponse(w, res.result, res.status)
	})
}
