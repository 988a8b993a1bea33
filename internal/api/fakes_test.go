package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/session"
)

// fakeBackend is an in-memory store backend speaking the real wire format
type fakeBackend struct {
	mu        sync.Mutex
	seq       int
	users     map[string]*fakeUser // by email
	tokens    map[string]string    // token to email
	products  []domain.Product
	topups    []domain.TopUpRequest
	purchases []domain.Purchase
	tickets   []domain.SupportTicket
	posts     []domain.BlogPost
	refuse    map[string]string // product id to purchase rejection detail, set before use
	calls     []fakeCall
	down      bool // answer every call with 502
}

type fakeUser struct {
	domain.User
	password string
}

type fakeCall struct {
	Method, Path, Auth string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users:  make(map[string]*fakeUser),
		tokens: make(map[string]string),
		refuse: make(map[string]string),
	}
}

func (f *fakeBackend) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeBackend) addUser(email, username, password string, balance float64, admin bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = &fakeUser{
		User:     domain.User{ID: "u-" + username, Email: email, Username: username, WalletBalance: balance, IsAdmin: admin},
		password: password,
	}
}

func (f *fakeBackend) addProduct(id, name string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = append(f.products, domain.Product{ID: id, Name: name, Description: name + " description", Price: price, Category: "games", IsActive: true})
}

func (f *fakeBackend) balance(email string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[email].WalletBalance
}

func (f *fakeBackend) revokeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = make(map[string]string)
}

func (f *fakeBackend) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *fakeBackend) topUps() []domain.TopUpRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TopUpRequest(nil), f.topups...)
}

func (f *fakeBackend) topUp(id string) domain.TopUpRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.topups {
		if t.ID == id {
			return t
		}
	}
	return domain.TopUpRequest{}
}

func (f *fakeBackend) callsTo(method, path string) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeBackend) allCalls() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeCall(nil), f.calls...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, text string) {
	writeJSON(w, status, map[string]string{"detail": text})
}

// authed resolves the bearer token; callers hold f.mu
func (f *fakeBackend) authed(w http.ResponseWriter, r *http.Request) *fakeUser {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	email, ok := f.tokens[tok]
	if tok == "" || !ok {
		detail(w, http.StatusUnauthorized, "Could not validate credentials")
		return nil
	}
	return f.users[email]
}

func (f *fakeBackend) admin(w http.ResponseWriter, r *http.Request) *fakeUser {
	u := f.authed(w, r)
	if u == nil {
		return nil
	}
	if !u.IsAdmin {
		detail(w, http.StatusForbidden, "Admin access required")
		return nil
	}
	return u
}

func (f *fakeBackend) issue(w http.ResponseWriter, u *fakeUser) {
	tok := f.nextID("tok-")
	f.tokens[tok] = u.Email
	writeJSON(w, http.StatusOK, map[string]any{"access_token": tok, "token_type": "bearer", "user": u.User})
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var in domain.Credentials
		_ = json.NewDecoder(r.Body).Decode(&in)
		u, ok := f.users[in.Email]
		if !ok || u.password != in.Password {
			detail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		f.issue(w, u)
	})
	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		var in domain.Registration
		_ = json.NewDecoder(r.Body).Decode(&in)
		if _, ok := f.users[in.Email]; ok {
			detail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		u := &fakeUser{User: domain.User{ID: f.nextID("u-"), Email: in.Email, Username: in.Username, IsAdmin: in.IsAdmin}, password: in.Password}
		f.users[in.Email] = u
		f.issue(w, u)
	})
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if u := f.authed(w, r); u != nil {
			writeJSON(w, http.StatusOK, u.User)
		}
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, append([]domain.Product{}, f.products...))
	})
	mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, p := range f.products {
			if p.ID == r.PathValue("id") {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		detail(w, http.StatusNotFound, "Product not found")
	})
	mux.HandleFunc("POST /api/products", func(w http.ResponseWriter, r *http.Request) {
		if f.admin(w, r) == nil {
			return
		}
		var in domain.NewProduct
		_ = json.NewDecoder(r.Body).Decode(&in)
		p := domain.Product{ID: f.nextID("p-"), Name: in.Name, Description: in.Description, Price: in.Price, ImageURL: in.ImageURL, Category: in.Category, IsActive: true, CreatedAt: time.Now()}
		f.products = append(f.products, p)
		writeJSON(w, http.StatusOK, p)
	})
	mux.HandleFunc("POST /api/purchase/{id}", func(w http.ResponseWriter, r *http.Request) {
		u := f.authed(w, r)
		if u == nil {
			return
		}
		id := r.PathValue("id")
		if reason, ok := f.refuse[id]; ok {
			detail(w, http.StatusBadRequest, reason)
			return
		}
		for _, p := range f.products {
			if p.ID != id {
				continue
			}
			if u.WalletBalance < p.Price {
				detail(w, http.StatusBadRequest, "Insufficient wallet balance")
				return
			}
			u.WalletBalance -= p.Price
			pur := domain.Purchase{ID: f.nextID("buy-"), UserID: u.ID, ProductID: p.ID, ProductName: p.Name, Amount: p.Price, CreatedAt: time.Now()}
			f.purchases = append(f.purchases, pur)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Purchase successful", "purchase_id": pur.ID})
			return
		}
		detail(w, http.StatusNotFound, "Product not found")
	})
	mux.HandleFunc("GET /api/purchases", func(w http.ResponseWriter, r *http.Request) {
		u := f.authed(w, r)
		if u == nil {
			return
		}
		out := []domain.Purchase{}
		for _, p := range f.purchases {
			if p.UserID == u.ID {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("POST /api/topup", func(w http.ResponseWriter, r *http.Request) {
		u := f.authed(w, r)
		if u == nil {
			return
		}
		var in domain.NewTopUp
		_ = json.NewDecoder(r.Body).Decode(&in)
		if !strings.HasPrefix(in.ReceiptData, "data:image/") {
			detail(w, http.StatusBadRequest, "Invalid receipt")
			return
		}
		t := domain.TopUpRequest{ID: f.nextID("r-"), UserID: u.ID, Amount: in.Amount, ReceiptData: in.ReceiptData, Status: domain.TopUpPending, CreatedAt: time.Now()}
		f.topups = append(f.topups, t)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Top-up request submitted successfully", "request_id": t.ID})
	})
	mux.HandleFunc("GET /api/topup-requests", func(w http.ResponseWriter, r *http.Request) {
		u := f.authed(w, r)
		if u == nil {
			return
		}
		out := []domain.TopUpRequest{}
		for _, t := range f.topups {
			if t.UserID == u.ID {
				out = append(out, t)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("GET /api/admin/topup-requests", func(w http.ResponseWriter, r *http.Request) {
		if f.admin(w, r) == nil {
			return
		}
		writeJSON(w, http.StatusOK, append([]domain.TopUpRequest{}, f.topups...))
	})
	review := func(status domain.TopUpStatus) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if f.admin(w, r) == nil {
				return
			}
			for i := range f.topups {
				t := &f.topups[i]
				if t.ID != r.PathValue("id") {
					continue
				}
				if t.Status != domain.TopUpPending {
					detail(w, http.StatusBadRequest, "Request already processed")
					return
				}
				t.Status = status
				if note := r.URL.Query().Get("admin_notes"); note != "" {
					t.AdminNotes = &note
				}
				if status == domain.TopUpApproved {
					for _, u := range f.users {
						if u.ID == t.UserID {
							u.WalletBalance += t.Amount
						}
					}
					writeJSON(w, http.StatusOK, map[string]string{"message": "Top-up approved successfully"})
					return
				}
				writeJSON(w, http.StatusOK, map[string]string{"message": "Top-up rejected"})
				return
			}
			detail(w, http.StatusNotFound, "Request not found")
		}
	}
	mux.HandleFunc("POST /api/admin/topup-requests/{id}/approve", review(domain.TopUpApproved))
	mux.HandleFunc("POST /api/admin/topup-requests/{id}/reject", review(domain.TopUpRejected))
	mux.HandleFunc("GET /api/tickets", func(w http.ResponseWriter, r *http.Request) {
		u := f.authed(w, r)
		if u == nil {
			return
		}
		out := []domain.SupportTicket{}
		for _, t := range f.tickets {
			if t.UserID == u.ID {
				out = append(out, t)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("POST /api/tickets", func(w http.ResponseWriter, r *http.Request) {
		u := f.authed(w, r)
		if u == nil {
			return
		}
		var in domain.NewTicket
		_ = json.NewDecoder(r.Body).Decode(&in)
		t := domain.SupportTicket{ID: f.nextID("t-"), UserID: u.ID, Subject: in.Subject, Message: in.Message, Status: domain.TicketOpen, CreatedAt: time.Now()}
		f.tickets = append(f.tickets, t)
		writeJSON(w, http.StatusOK, t)
	})
	mux.HandleFunc("GET /api/blog", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, append([]domain.BlogPost{}, f.posts...))
	})
	mux.HandleFunc("POST /api/blog", func(w http.ResponseWriter, r *http.Request) {
		u := f.admin(w, r)
		if u == nil {
			return
		}
		var in domain.NewBlogPost
		_ = json.NewDecoder(r.Body).Decode(&in)
		p := domain.BlogPost{ID: f.nextID("b-"), Title: in.Title, Content: in.Content, AuthorID: u.ID, IsPublished: true, CreatedAt: time.Now()}
		f.posts = append(f.posts, p)
		writeJSON(w, http.StatusOK, p)
	})

	// Serialize every request and record who asked
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, fakeCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")})
		if f.down {
			detail(w, http.StatusBadGateway, "Bad gateway")
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// memStore is an in-memory session store
type memStore struct {
	mu   sync.Mutex
	recs map[string]domain.SessionRecord
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]domain.SessionRecord)}
}

func (s *memStore) Load(_ context.Context, id string) (*domain.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &rec, nil
}

func (s *memStore) Save(_ context.Context, rec *domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = *rec
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, id)
	return nil
}

// mapCache is an in-memory ViewCache that round-trips through JSON like Redis does
type mapCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}
