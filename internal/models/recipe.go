package models

import "time"

// Ingrediente is a single ingredient entry, quantity included verbatim in Item.
type Ingrediente struct {
	Item      string `json:"item"`
	Categoria string `json:"categoria,omitempty"`
}

// Passo is one preparation step. Passo numbering is dense and starts at 1.
type Passo struct {
	Passo     int    `json:"passo"`
	Instrucao string `json:"instrucao"`
}

// Recipe is the structured result of a successful pipeline run. The JSON field
// names match what the web client stores, so they stay in Portuguese.
type Recipe struct {
	ID           string        `json:"id"`
	Titulo       string        `json:"titulo"`
	Ingredientes []Ingrediente `json:"ingredientes"`
	ModoPreparo  []Passo       `json:"modo_preparo"`
	TempoPreparo string        `json:"tempo_preparo"`
	Rendimento   string        `json:"rendimento"`
	VideoURL     string        `json:"videoUrl"`
	CreatedAt    time.Time     `json:"createdAt"`
	Idioma       string        `json:"idioma,omitempty"`
}
