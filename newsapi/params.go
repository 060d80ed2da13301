package newsapi

import (
	"newsdesk/config"
	"newsdesk/types"
)

// Params describes one batch request. Zero fields are filled from defaults.
type Params struct {
	Category   types.Category `json:"category"`
	Count      int            `json:"count"`
	MinLength  int            `json:"min_length"`
	MaxLength  int            `json:"max_length"`
	ImgWidth   int            `json:"img_width"`
	ImgHeight  int            `json:"img_height"`
	ImgQuality int            `json:"img_quality"`
}

// DefaultParams are the request defaults used when nothing is configured
func DefaultParams() Params {
	return Params{
		Category:   types.CategoryTechnology,
		Count:      config.DefaultCount,
		MinLength:  config.DefaultMinLength,
		MaxLength:  config.DefaultMaxLength,
		ImgWidth:   config.DefaultImgWidth,
		ImgHeight:  config.DefaultImgHeight,
		ImgQuality: config.DefaultImgQuality,
	}
}

// ParamsFromConfig builds request defaults from the fetch configuration
func ParamsFromConfig(cfg config.FetchConfig) Params {
	return Params{
		Category:   types.CategoryTechnology,
		Count:      cfg.Count,
		MinLength:  cfg.MinLength,
		MaxLength:  cfg.MaxLength,
		ImgWidth:   cfg.ImgWidth,
		ImgHeight:  cfg.ImgHeight,
		ImgQuality: cfg.ImgQuality,
	}.WithDefaults(DefaultParams())
}

// WithDefaults merges p over defaults: every non-zero field of p wins.
// An unknown category is replaced by the default one.
func (p Params) WithDefaults(defaults Params) Params {
	out := defaults
	if p.Category.Valid() {
		out.Category = p.Category
	}
	if !out.Category.Valid() {
		out.Category = types.CategoryTechnology
	}
	if p.Count > 0 {
		out.Count = p.Count
	}
	if p.MinLength > 0 {
		out.MinLength = p.MinLength
	}
	if p.MaxLength > 0 {
		out.MaxLength = p.MaxLength
	}
	if p.ImgWidth > 0 {
		out.ImgWidth = p.ImgWidth
	}
	if p.ImgHeight > 0 {
		out.ImgHeight = p.ImgHeight
	}
	if p.ImgQuality > 0 {
		out.ImgQuality = p.ImgQuality
	}
	if out.Count <= 0 {
		out.Count = config.DefaultCount
	}
	return out
}
