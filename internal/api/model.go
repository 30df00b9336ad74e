package api

import "github.com/alvinbaena/pwd-autopsy/pkg/autopsy"

type autopsyRequest struct {
	Password      string `json:"password" binding:"required,max=128"`
	CheckBreaches bool   `json:"checkBreaches"`
}

type autopsyResponse struct {
	Characteristics autopsy.Characteristics `json:"characteristics"`
	DNA             []autopsy.Segment       `json:"dna"`
	BreachCount     *int                    `json:"breachCount"`
}

type dnaRequest struct {
	Password string `json:"password" binding:"required,max=128"`
}

type dnaResponse struct {
	DNA []autopsy.Segment `json:"dna"`
}
