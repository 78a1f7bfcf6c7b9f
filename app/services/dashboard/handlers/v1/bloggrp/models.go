package bloggrp

import (
	"time"

	"github.com/inkwell/dashboard/business/core/blog"
)

type details struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Logo        string    `json:"logo,omitempty"`
	LogoURL     string    `json:"logoURL,omitempty"`
	DateUpdated time.Time `json:"dateUpdated"`
}

func toDetails(d blog.Details) details {
	dt := details{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Logo:        d.Logo,
		DateUpdated: d.DateUpdated,
	}

	if d.Logo != "" {
		dt.LogoURL = blog.LogoURL(d.Logo)
	}

	return dt
}
