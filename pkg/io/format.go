package io

type snapshot struct {
	Region *rect  `json:"region,omitempty"`
	Bins   []bin  `json:"bins,omitempty"`
	Cells  []cell `json:"cells"`
	Nets   []net  `json:"nets,omitempty"`
	Pins   []pin  `json:"pins,omitempty"`
}

type rect struct {
	Lx float64 `json:"lx"`
	Ly float64 `json:"ly"`
	Ux float64 `json:"ux"`
	Uy float64 `json:"uy"`
}

type bin struct {
	rect
	Density float64 `json:"density"`
	Fx      float64 `json:"fx"`
	Fy      float64 `json:"fy"`
}

type cell struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind,omitempty"`
	Cx       float64   `json:"cx"`
	Cy       float64   `json:"cy"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Instance *instance `json:"instance,omitempty"`
}

type instance struct {
	Name   string `json:"name,omitempty"`
	Master string `json:"master,omitempty"`
}

type net struct {
	Name string `json:"name"`
}

type pin struct {
	Cell string  `json:"cell"`
	Net  string  `json:"net,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
