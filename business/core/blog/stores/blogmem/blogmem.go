// Package blogmem contains the blog related storage kept in memory. It
// stands in for the on-chain registry and can be seeded from a YAML file.
package blogmem

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/inkwell/dashboard/business/core/blog"
	"gopkg.in/yaml.v3"
)

// Seed is the file representation of the registry.
type Seed struct {
	Blogs []SeedBlog `yaml:"blogs"`
}

// SeedBlog is a blog along with its users and posts.
type SeedBlog struct {
	blog.Details `yaml:",inline"`
	Users        []blog.User `yaml:"users"`
	Posts        []blog.Post `yaml:"posts"`
}

type record struct {
	details blog.Details
	users   []blog.User
	posts   []blog.Post
}

// Store manages the set of APIs for blog access in memory.
type Store struct {
	mu    sync.RWMutex
	blogs map[string]*record
	order []string
}

// NewStore constructs the api for data access.
func NewStore(seed Seed) (*Store, error) {
	s := Store{
		blogs: make(map[string]*record),
	}

	for _, sb := range seed.Blogs {
		if sb.ID == "" {
			return nil, fmt.Errorf("seed: blog %q has no id", sb.Title)
		}
		if _, exists := s.blogs[sb.ID]; exists {
			return nil, fmt.Errorf("seed: duplicate blog id %s", sb.ID)
		}

		rec := record{
			details: sb.Details,
			users:   slices.Clone(sb.Users),
		}
		for _, p := range sb.Posts {
			p.BlogID = sb.ID
			rec.posts = append(rec.posts, p)
		}

		s.blogs[sb.ID] = &rec
		s.order = append(s.order, sb.ID)
	}

	return &s, nil
}

// LoadFile reads the seed stored at path and constructs the store. An empty
// path produces an empty store.
func LoadFile(path string) (*Store, error) {
	if path == "" {
		return NewStore(Seed{})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed %s: %w", path, err)
	}

	return NewStore(seed)
}

// WalletBlogs returns the blogs the wallet holds roles on, in registry order.
func (s *Store) WalletBlogs(ctx context.Context, wallet string) ([]blog.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ms []blog.Membership
	for _, id := range s.order {
		rec := s.blogs[id]
		if idx := userIndex(rec.users, wallet); idx != -1 {
			ms = append(ms, blog.Membership{BlogID: id, Roles: slices.Clone(rec.users[idx].Roles)})
		}
	}

	return ms, nil
}

// QueryBlog returns the details of the blog.
func (s *Store) QueryBlog(ctx context.Context, blogID string) (blog.Details, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.blogs[blogID]
	if !exists {
		return blog.Details{}, blog.ErrNotFound
	}

	return rec.details, nil
}

// UpdateBlog replaces the details of the blog.
func (s *Store) UpdateBlog(ctx context.Context, d blog.Details) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.blogs[d.ID]
	if !exists {
		return blog.ErrNotFound
	}

	rec.details = d
	return nil
}

// QueryPosts returns the posts of the blog.
func (s *Store) QueryPosts(ctx context.Context, blogID string) ([]blog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.blogs[blogID]
	if !exists {
		return nil, blog.ErrNotFound
	}

	return slices.Clone(rec.posts), nil
}

// QueryPost returns a single post of the blog.
func (s *Store) QueryPost(ctx context.Context, blogID string, postID string) (blog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.blogs[blogID]
	if !exists {
		return blog.Post{}, blog.ErrNotFound
	}

	idx := postIndex(rec.posts, postID)
	if idx == -1 {
		return blog.Post{}, blog.ErrNotFound
	}

	return rec.posts[idx], nil
}

// CreatePost adds the post to its blog.
func (s *Store) CreatePost(ctx context.Context, p blog.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.blogs[p.BlogID]
	if !exists {
		return blog.ErrNotFound
	}

	if postIndex(rec.posts, p.ID) != -1 {
		return fmt.Errorf("post %s already exists", p.ID)
	}

	rec.posts = append(rec.posts, p)
	return nil
}

// UpdatePost replaces the post.
func (s *Store) UpdatePost(ctx context.Context, p blog.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.blogs[p.BlogID]
	if !exists {
		return blog.ErrNotFound
	}

	idx := postIndex(rec.posts, p.ID)
	if idx == -1 {
		return blog.ErrNotFound
	}

	rec.posts[idx] = p
	return nil
}

// DeletePost removes the post.
func (s *Store) DeletePost(ctx context.Context, blogID string, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.blogs[blogID]
	if !exists {
		return blog.ErrNotFound
	}

	idx := postIndex(rec.posts, postID)
	if idx == -1 {
		return blog.ErrNotFound
	}

	rec.posts = slices.Delete(rec.posts, idx, idx+1)
	return nil
}

// QueryUsers returns the wallets holding roles on the blog.
func (s *Store) QueryUsers(ctx context.Context, blogID string) ([]blog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.blogs[blogID]
	if !exists {
		return nil, blog.ErrNotFound
	}

	return slices.Clone(rec.users), nil
}

// SetRoles replaces the roles the wallet holds on the blog.
func (s *Store) SetRoles(ctx context.Context, blogID string, wallet string, roles []blog.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.blogs[blogID]
	if !exists {
		return blog.ErrNotFound
	}

	u := blog.User{Wallet: wallet, Roles: slices.Clone(roles)}

	if idx := userIndex(rec.users, wallet); idx != -1 {
		rec.users[idx] = u
		return nil
	}

	rec.users = append(rec.users, u)
	return nil
}

// RemoveUser revokes all the roles the wallet holds on the blog.
func (s *Store) RemoveUser(ctx context.Context, blogID string, wallet string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.blogs[blogID]
	if !exists {
		return blog.ErrNotFound
	}

	idx := userIndex(rec.users, wallet)
	if idx == -1 {
		return blog.ErrNotFound
	}

	rec.users = slices.Delete(rec.users, idx, idx+1)
	return nil
}

// =============================================================================

func userIndex(users []blog.User, wallet string) int {
	return slices.IndexFunc(users, func(u blog.User) bool {
		return strings.EqualFold(u.Wallet, wallet)
	})
}

func postIndex(posts []blog.Post, postID string) int {
	return slices.IndexFunc(posts, func(p blog.Post) bool {
		return p.ID == postID
	})
}
