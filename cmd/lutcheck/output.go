package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"calcurve-go/errcode"
)

// row is one line of command output.
type row struct {
	File   string   `json:"file,omitempty"`
	Name   string   `json:"name,omitempty"`
	Query  *float64 `json:"query,omitempty"`
	Value  *float64 `json:"value,omitempty"`
	Knots  int      `json:"knots,omitempty"`
	Lo     *float64 `json:"domain_min,omitempty"`
	Hi     *float64 `json:"domain_max,omitempty"`
	Policy string   `json:"policy,omitempty"`
	Error  string   `json:"error,omitempty"` // errcode.Code
	Msg    string   `json:"msg,omitempty"`
}

func withErr(r row, err error) row {
	if err != nil {
		r.Error = string(errcode.Of(err))
		r.Msg = errcode.Message(err)
	}
	return r
}

type printer struct {
	w    io.Writer
	json bool
	enc  *json.Encoder
}

func newPrinter(w io.Writer, output string) *printer {
	return &printer{w: w, json: output == "json", enc: json.NewEncoder(w)}
}

func (p *printer) print(r row) error {
	if p.json {
		return p.enc.Encode(r)
	}
	_, err := fmt.Fprintln(p.w, r.text())
	return err
}

func (r row) text() string {
	s := ""
	add := func(v string) {
		if v == "" {
			return
		}
		if s != "" {
			s += "\t"
		}
		s += v
	}
	add(r.File)
	if r.Query != nil {
		add(num(*r.Query))
	}
	if r.Error != "" {
		add("error=" + r.Error)
		add(r.Msg)
		return s
	}
	if r.Value != nil {
		add(num(*r.Value))
	}
	if r.Knots > 0 {
		add("ok")
		add("name=" + r.Name)
		add("knots=" + strconv.Itoa(r.Knots))
		add("domain=[" + num(*r.Lo) + "," + num(*r.Hi) + "]")
		add("policy=" + r.Policy)
	}
	return s
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func ptr(v float64) *float64 { return &v }
