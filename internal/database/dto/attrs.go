package dto

import "github.com/dynoinc/skyplan/internal/round"

// RoundAttrs is the JSON document stored with every planned round.
type RoundAttrs struct {
	Source   string     `json:"source"`
	Info     round.Info `json:"round_info"`
	Branches [][]int64  `json:"branches"`
	Later    []int64    `json:"later,omitempty"`
}
