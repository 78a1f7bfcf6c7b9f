// Package blog provides the business rules for managing the blogs a wallet
// holds roles on: blog details, posts and the users of a blog.
package blog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/inkwell/dashboard/foundation/events"
	"github.com/inkwell/dashboard/foundation/media"
	"github.com/inkwell/dashboard/foundation/validate"
	"go.uber.org/zap"
)

// Set of error variables for blog management.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("attempted action is not allowed")
	ErrNoRoles     = errors.New("at least one role must be selected")
	ErrRemoveSelf  = errors.New("you cannot remove yourself")
	ErrInvalidLogo = errors.New("logo must be an Arweave transaction id or an http(s) URL")
)

// Set of event types published by the core.
const (
	EvBlogUpdated = "blog.updated"
	EvPostCreated = "post.created"
	EvPostUpdated = "post.updated"
	EvPostDeleted = "post.deleted"
	EvUserAdded   = "user.added"
	EvUserRemoved = "user.removed"
)

// ArweaveGateway is where Arweave transaction ids are served from.
const ArweaveGateway = "https://arweave.net/"

// Storer declares the behavior this package needs to persist and retrieve
// blog data.
type Storer interface {
	WalletBlogs(ctx context.Context, wallet string) ([]Membership, error)
	QueryBlog(ctx context.Context, blogID string) (Details, error)
	UpdateBlog(ctx context.Context, d Details) error
	QueryPosts(ctx context.Context, blogID string) ([]Post, error)
	QueryPost(ctx context.Context, blogID string, postID string) (Post, error)
	CreatePost(ctx context.Context, p Post) error
	UpdatePost(ctx context.Context, p Post) error
	DeletePost(ctx context.Context, blogID string, postID string) error
	QueryUsers(ctx context.Context, blogID string) ([]User, error)
	SetRoles(ctx context.Context, blogID string, wallet string, roles []Role) error
	RemoveUser(ctx context.Context, blogID string, wallet string) error
}

// Uploader declares the behavior this package needs to store logo images.
type Uploader interface {
	Upload(ctx context.Context, f media.File, tags map[string]string) (string, error)
}

// Config contains the systems the core depends on.
type Config struct {
	Log      *zap.SugaredLogger
	Storer   Storer
	Uploader Uploader
	Evts     *events.Events
	Media    media.Options
	Now      func() time.Time
}

// Core manages the set of APIs for blog access.
type Core struct {
	log      *zap.SugaredLogger
	storer   Storer
	uploader Uploader
	evts     *events.Events
	media    media.Options
	now      func() time.Time
}

// NewCore constructs a core for blog api access.
func NewCore(cfg Config) *Core {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Media.MaxSize == 0 {
		cfg.Media = media.DefaultOptions()
	}

	return &Core{
		log:      cfg.Log,
		storer:   cfg.Storer,
		uploader: cfg.Uploader,
		evts:     cfg.Evts,
		media:    cfg.Media,
		now:      cfg.Now,
	}
}

// Memberships returns the blogs the wallet holds roles on.
func (c *Core) Memberships(ctx context.Context, wallet string) ([]Membership, error) {
	ms, err := c.storer.WalletBlogs(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("query: wallet[%s]: %w", wallet, err)
	}

	return ms, nil
}

// Membership returns the roles the wallet holds on the blog.
func (c *Core) Membership(ctx context.Context, wallet string, blogID string) (Membership, error) {
	ms, err := c.Memberships(ctx, wallet)
	if err != nil {
		return Membership{}, err
	}

	idx := slices.IndexFunc(ms, func(m Membership) bool { return m.BlogID == blogID })
	if idx == -1 {
		return Membership{}, ErrForbidden
	}

	return ms[idx], nil
}

// =============================================================================

// QueryBlog returns the details of a blog the wallet is a member of.
func (c *Core) QueryBlog(ctx context.Context, wallet string, blogID string) (Details, error) {
	if _, err := c.Membership(ctx, wallet, blogID); err != nil {
		return Details{}, err
	}

	d, err := c.storer.QueryBlog(ctx, blogID)
	if err != nil {
		return Details{}, fmt.Errorf("query: blogID[%s]: %w", blogID, err)
	}

	return d, nil
}

// UpdateBlog modifies the details of a blog. Only admins can do this.
func (c *Core) UpdateBlog(ctx context.Context, wallet string, blogID string, ud UpdateDetails) (Details, error) {
	if err := c.requireAdmin(ctx, wallet, blogID); err != nil {
		return Details{}, err
	}

	d, err := c.storer.QueryBlog(ctx, blogID)
	if err != nil {
		return Details{}, fmt.Errorf("query: blogID[%s]: %w", blogID, err)
	}

	if ud.Title != nil {
		d.Title = strings.TrimSpace(*ud.Title)
	}
	if ud.Description != nil {
		d.Description = strings.TrimSpace(*ud.Description)
	}
	if ud.Logo != nil {
		logo := strings.TrimSpace(*ud.Logo)
		if logo != "" && !ValidLogo(logo) {
			return Details{}, ErrInvalidLogo
		}
		d.Logo = logo
	}
	d.DateUpdated = c.now()

	if err := c.storer.UpdateBlog(ctx, d); err != nil {
		return Details{}, fmt.Errorf("update: blogID[%s]: %w", blogID, err)
	}

	c.publish(EvBlogUpdated, blogID, wallet, d.Title)

	return d, nil
}

// SetLogo validates and uploads the image and makes it the blog logo.
func (c *Core) SetLogo(ctx context.Context, wallet string, blogID string, name string, data []byte) (Details, error) {
	if err := c.requireAdmin(ctx, wallet, blogID); err != nil {
		return Details{}, err
	}

	f, err := media.Validate(name, data, c.media)
	if err != nil {
		return Details{}, err
	}

	tags := map[string]string{
		"Content-Type": f.ContentType,
		"App-Name":     "Inkwell",
		"Blog-Id":      blogID,
	}

	id, err := c.uploader.Upload(ctx, f, tags)
	if err != nil {
		return Details{}, fmt.Errorf("upload: %s: %w", name, err)
	}

	c.log.Infow("logo uploaded", "blogID", blogID, "id", id, "contentType", f.ContentType, "size", len(data))

	return c.UpdateBlog(ctx, wallet, blogID, UpdateDetails{Logo: &id})
}

// =============================================================================

// QueryPosts returns the posts of a blog the wallet is a member of, newest
// first.
func (c *Core) QueryPosts(ctx context.Context, wallet string, blogID string) ([]Post, error) {
	if _, err := c.Membership(ctx, wallet, blogID); err != nil {
		return nil, err
	}

	posts, err := c.storer.QueryPosts(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("query: blogID[%s]: %w", blogID, err)
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.DateCreated.Compare(a.DateCreated)
	})

	return posts, nil
}

// QueryPost returns a single post.
func (c *Core) QueryPost(ctx context.Context, wallet string, blogID string, postID string) (Post, error) {
	if _, err := c.Membership(ctx, wallet, blogID); err != nil {
		return Post{}, err
	}

	p, err := c.storer.QueryPost(ctx, blogID, postID)
	if err != nil {
		return Post{}, fmt.Errorf("query: blogID[%s] postID[%s]: %w", blogID, postID, err)
	}

	return p, nil
}

// CreatePost adds a post to the blog. Editors and admins can do this.
func (c *Core) CreatePost(ctx context.Context, wallet string, blogID string, np NewPost) (Post, error) {
	if err := validate.Check(np); err != nil {
		return Post{}, err
	}

	if err := c.requireEditor(ctx, wallet, blogID); err != nil {
		return Post{}, err
	}

	now := c.now()

	p := Post{
		ID:          uuid.NewString(),
		BlogID:      blogID,
		Title:       strings.TrimSpace(np.Title),
		Slug:        slug.Make(np.Title),
		Description: np.Description,
		Body:        np.Body,
		Author:      wallet,
		Labels:      slices.Clone(np.Labels),
		Published:   np.Published,
		DateCreated: now,
		DateUpdated: now,
	}

	if err := c.storer.CreatePost(ctx, p); err != nil {
		return Post{}, fmt.Errorf("create: blogID[%s]: %w", blogID, err)
	}

	c.publish(EvPostCreated, blogID, wallet, p.ID)

	return p, nil
}

// UpdatePost modifies a post. Editors and admins can do this.
func (c *Core) UpdatePost(ctx context.Context, wallet string, blogID string, postID string, up UpdatePost) (Post, error) {
	if err := c.requireEditor(ctx, wallet, blogID); err != nil {
		return Post{}, err
	}

	p, err := c.storer.QueryPost(ctx, blogID, postID)
	if err != nil {
		return Post{}, fmt.Errorf("query: blogID[%s] postID[%s]: %w", blogID, postID, err)
	}

	if up.Title != nil {
		p.Title = strings.TrimSpace(*up.Title)
		p.Slug = slug.Make(p.Title)
	}
	if up.Description != nil {
		p.Description = *up.Description
	}
	if up.Body != nil {
		p.Body = *up.Body
	}
	if up.Labels != nil {
		p.Labels = slices.Clone(up.Labels)
	}
	if up.Published != nil {
		p.Published = *up.Published
	}
	p.DateUpdated = c.now()

	if err := c.storer.UpdatePost(ctx, p); err != nil {
		return Post{}, fmt.Errorf("update: blogID[%s] postID[%s]: %w", blogID, postID, err)
	}

	c.publish(EvPostUpdated, blogID, wallet, p.ID)

	return p, nil
}

// DeletePost removes a post. Editors and admins can do this.
func (c *Core) DeletePost(ctx context.Context, wallet string, blogID string, postID string) error {
	if err := c.requireEditor(ctx, wallet, blogID); err != nil {
		return err
	}

	if err := c.storer.DeletePost(ctx, blogID, postID); err != nil {
		return fmt.Errorf("delete: blogID[%s] postID[%s]: %w", blogID, postID, err)
	}

	c.publish(EvPostDeleted, blogID, wallet, postID)

	return nil
}

// =============================================================================

// QueryUsers returns the wallets with roles on the blog. Only admins can
// do this.
func (c *Core) QueryUsers(ctx context.Context, wallet string, blogID string) ([]User, error) {
	if err := c.requireAdmin(ctx, wallet, blogID); err != nil {
		return nil, err
	}

	users, err := c.storer.QueryUsers(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("query: blogID[%s]: %w", blogID, err)
	}

	return users, nil
}

// QueryUser returns the roles of a single wallet on the blog.
func (c *Core) QueryUser(ctx context.Context, wallet string, blogID string, userWallet string) (User, error) {
	users, err := c.QueryUsers(ctx, wallet, blogID)
	if err != nil {
		return User{}, err
	}

	idx := slices.IndexFunc(users, func(u User) bool { return strings.EqualFold(u.Wallet, userWallet) })
	if idx == -1 {
		return User{}, ErrNotFound
	}

	return users[idx], nil
}

// AddUser grants the roles to the wallet. Only admins can do this.
func (c *Core) AddUser(ctx context.Context, wallet string, blogID string, nu NewUser) (User, error) {
	if err := validate.Check(nu); err != nil {
		return User{}, err
	}

	roles := nu.Roles()
	if len(roles) == 0 {
		return User{}, ErrNoRoles
	}

	if err := c.requireAdmin(ctx, wallet, blogID); err != nil {
		return User{}, err
	}

	if err := c.storer.SetRoles(ctx, blogID, nu.Wallet, roles); err != nil {
		return User{}, fmt.Errorf("set roles: blogID[%s] wallet[%s]: %w", blogID, nu.Wallet, err)
	}

	c.publish(EvUserAdded, blogID, wallet, nu.Wallet)

	return User{Wallet: nu.Wallet, Roles: roles}, nil
}

// RemoveUser revokes every role of the wallet. Only admins can do this and
// an admin cannot remove themselves.
func (c *Core) RemoveUser(ctx context.Context, wallet string, blogID string, userWallet string) error {
	if strings.EqualFold(wallet, userWallet) {
		return ErrRemoveSelf
	}

	if err := c.requireAdmin(ctx, wallet, blogID); err != nil {
		return err
	}

	if err := c.storer.RemoveUser(ctx, blogID, userWallet); err != nil {
		return fmt.Errorf("remove: blogID[%s] wallet[%s]: %w", blogID, userWallet, err)
	}

	c.publish(EvUserRemoved, blogID, wallet, userWallet)

	return nil
}

// =============================================================================

// ValidLogo reports if the logo is an Arweave transaction id or an http(s)
// URL.
func ValidLogo(logo string) bool {
	if validate.IsArweaveID(logo) {
		return true
	}

	u, err := url.Parse(logo)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LogoURL returns the address the logo can be loaded from.
func LogoURL(logo string) string {
	if validate.IsArweaveID(logo) {
		return ArweaveGateway + logo
	}
	return logo
}

func (c *Core) requireAdmin(ctx context.Context, wallet string, blogID string) error {
	m, err := c.Membership(ctx, wallet, blogID)
	if err != nil {
		return err
	}

	if !m.IsAdmin() {
		return ErrForbidden
	}

	return nil
}

func (c *Core) requireEditor(ctx context.Context, wallet string, blogID string) error {
	m, err := c.Membership(ctx, wallet, blogID)
	if err != nil {
		return err
	}

	if !m.CanEdit() {
		return ErrForbidden
	}

	return nil
}

func (c *Core) publish(typ string, blogID string, wallet string, detail string) {
	c.log.Infow("blog change", "type", typ, "blogID", blogID, "wallet", wallet, "detail", detail)

	if c.evts == nil {
		return
	}

	c.evts.Send(events.Event{
		Type:   typ,
		BlogID: blogID,
		Wallet: wallet,
		Detail: detail,
	})
}
