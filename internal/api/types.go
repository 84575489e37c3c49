package api

import "github.com/vmunix/cinedex/internal/library"

type searchRequest struct {
	Keywords []string `json:"keywords"`
	Sort     string   `json:"sort"`
}

type searchResponse struct {
	Results []library.Movie `json:"results"`
}

type statusResponse struct {
	Version  string `json:"version"`
	Movies   int    `json:"movies"`
	Indexing bool   `json:"indexing"`
	Caching  bool   `json:"caching"`
}
