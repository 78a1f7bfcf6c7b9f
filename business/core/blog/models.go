package blog

import (
	"slices"
	"time"

	"github.com/inkwell/dashboard/foundation/validate"
)

// Role is a permission a wallet holds on a blog.
type Role string

// Set of roles a wallet can hold on a blog.
const (
	RoleAdmin  Role = "DEFAULT_ADMIN_ROLE"
	RoleEditor Role = "EDITOR_ROLE"
)

// Membership is a blog the wallet holds at least one role on.
type Membership struct {
	BlogID string `json:"blogId" yaml:"blog_id"`
	Roles  []Role `json:"roles" yaml:"roles"`
}

// IsAdmin reports if the membership carries the admin role.
func (m Membership) IsAdmin() bool {
	return slices.Contains(m.Roles, RoleAdmin)
}

// CanEdit reports if the membership can manage posts.
func (m Membership) CanEdit() bool {
	return slices.Contains(m.Roles, RoleAdmin) || slices.Contains(m.Roles, RoleEditor)
}

// Details represents the public information of a blog.
type Details struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Logo        string    `json:"logo,omitempty" yaml:"logo"`
	DateUpdated time.Time `json:"dateUpdated" yaml:"date_updated"`
}

// UpdateDetails defines what information may be provided to modify an
// existing blog. All fields are optional.
type UpdateDetails struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Logo        *string `json:"logo"`
}

// Validate checks the data in the model is considered clean.
func (ud UpdateDetails) Validate() error {
	return validate.Check(ud)
}

// Post represents a single entry of a blog.
type Post struct {
	ID          string    `json:"id" yaml:"id"`
	BlogID      string    `json:"blogId" yaml:"blog_id"`
	Title       string    `json:"title" yaml:"title"`
	Slug        string    `json:"slug" yaml:"slug"`
	Description string    `json:"description" yaml:"description"`
	Body        string    `json:"body" yaml:"body"`
	Author      string    `json:"author" yaml:"author"`
	Labels      []string  `json:"labels" yaml:"labels"`
	Published   bool      `json:"published" yaml:"published"`
	DateCreated time.Time `json:"dateCreated" yaml:"date_created"`
	DateUpdated time.Time `json:"dateUpdated" yaml:"date_updated"`
}

// NewPost contains information needed to create a new post.
type NewPost struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=500"`
	Body        string   `json:"body"`
	Labels      []string `json:"labels" validate:"dive,required"`
	Published   bool     `json:"published"`
}

// Validate checks the data in the model is considered clean.
func (np NewPost) Validate() error {
	return validate.Check(np)
}

// UpdatePost defines what information may be provided to modify an existing
// post. All fields are optional.
type UpdatePost struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Body        *string  `json:"body"`
	Labels      []string `json:"labels" validate:"omitempty,dive,required"`
	Published   *bool    `json:"published"`
}

// Validate checks the data in the model is considered clean.
func (up UpdatePost) Validate() error {
	return validate.Check(up)
}

// User is a wallet with roles on a blog.
type User struct {
	Wallet string `json:"wallet" yaml:"wallet"`
	Roles  []Role `json:"roles" yaml:"roles"`
}

// NewUser contains information needed to grant a wallet roles on a blog.
type NewUser struct {
	Wallet string `json:"wallet" validate:"required,wallet"`
	Admin  bool   `json:"admin"`
	Editor bool   `json:"editor"`
}

// Validate checks the data in the model is considered clean.
func (nu NewUser) Validate() error {
	return validate.Check(nu)
}

// Roles returns the roles selected for the user.
func (nu NewUser) Roles() []Role {
	var roles []Role
	if nu.Admin {
		roles = append(roles, RoleAdmin)
	}
	if nu.Editor {
		roles = append(roles, RoleEditor)
	}
	return roles
}
