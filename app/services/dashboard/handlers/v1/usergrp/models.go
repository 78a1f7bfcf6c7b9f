package usergrp

import "github.com/inkwell/dashboard/business/core/blog"

type user struct {
	Wallet string      `json:"wallet"`
	Name   string      `json:"name"`
	Roles  []blog.Role `json:"roles"`
}
