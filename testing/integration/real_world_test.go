package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zoobzio/courier"
	couriertest "github.com/zoobzio/courier/testing"
)

// Domain types for real-world scenarios.

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateUserInput struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type GetUserInput struct {
	ID string `json:"-" endpoint:"skip"`
}

type ListUsersInput struct {
	Page  *int    `json:"page" endpoint:"query"`
	Email *string `json:"email" endpoint:"query"`
}

type UpdateUserInput struct {
	ID    string  `json:"-" endpoint:"skip"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type DeleteUserInput struct {
	ID string `json:"-" endpoint:"skip"`
}

type UserListOutput struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// In-memory store backing the test API.
type userStore struct {
	mu     sync.RWMutex
	users  map[string]*User
	nextID int
}

func newUserStore() *userStore {
	return &userStore{
		users:  make(map[string]*User),
		nextID: 1,
	}
}

func (s *userStore) Create(name, email string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &User{
		ID:    strconv.Itoa(s.nextID),
		Name:  name,
		Email: email,
	}
	s.users[user.ID] = user
	s.nextID++
	return user
}

func (s *userStore) Get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, exists := s.users[id]
	return user, exists
}

func (s *userStore) Update(id string, name, email *string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[id]
	if !exists {
		return nil, false
	}
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = *email
	}
	return user, true
}

func (s *userStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.users[id]
	delete(s.users, id)
	return exists
}

func (s *userStore) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out
}

// newUserAPI wires a CRUD user API onto an APIServer.
func newUserAPI(store *userStore) *couriertest.APIServer {
	server := couriertest.NewAPIServer()

	server.Handle(http.MethodPost, "/users", func(w http.ResponseWriter, r *http.Request) {
		var in CreateUserInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user := store.Create(in.Name, in.Email)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	})

	server.Handle(http.MethodGet, "/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		user, exists := store.Get(chi.URLParam(r, "id"))
		if !exists {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	})

	server.Handle(http.MethodGet, "/users", func(w http.ResponseWriter, r *http.Request) {
		users := store.List()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UserListOutput{Users: users, Total: len(users)})
	})

	server.Handle(http.MethodPatch, "/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name  *string `json:"name"`
			Email *string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user, exists := store.Update(chi.URLParam(r, "id"), in.Name, in.Email)
		if !exists {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	})

	server.Handle(http.MethodDelete, "/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !store.Delete(chi.URLParam(r, "id")) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return server
}

func TestRealWorld_UserCRUD(t *testing.T) {
	store := newUserStore()
	server := newUserAPI(store)
	defer server.Close()

	client := server.Client(nil)
	ctx := context.Background()

	createUser := courier.MustEndpoint[CreateUserInput, User]("create-user", http.MethodPost, "users").
		WithValidation().
		WithMiddleware(courier.DeclaredContentType())
	getUser := courier.MustEndpoint[GetUserInput, User]("get-user", http.MethodGet, "users/{id}")
	updateUser := courier.MustEndpoint[UpdateUserInput, User]("update-user", http.MethodPatch, "users/{id}").
		WithMiddleware(courier.DeclaredContentType())
	deleteUser := courier.MustEndpoint[DeleteUserInput, courier.NoResult]("delete-user", http.MethodDelete, "users/{id}")

	// Create.
	created, err := createUser.Exec(ctx, client, CreateUserInput{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" || created.Name != "Alice" {
		t.Fatalf("unexpected created user: %+v", created)
	}

	// Read back.
	fetched, err := getUser.Exec(ctx, client, GetUserInput{ID: created.ID})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched != created {
		t.Errorf("expected %+v, got %+v", created, fetched)
	}

	// Partial update leaves the email untouched.
	newName := "Alice Cooper"
	updated, err := updateUser.Exec(ctx, client, UpdateUserInput{ID: created.ID, Name: &newName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Alice Cooper" || updated.Email != "alice@example.com" {
		t.Errorf("unexpected updated user: %+v", updated)
	}

	// The nil email field must not have reached the wire at all.
	capture := server.LastCapture()
	var patchBody map[string]any
	if err := capture.DecodeJSON(&patchBody); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, exists := patchBody["email"]; exists {
		t.Errorf("nil optional field leaked into body: %v", patchBody)
	}

	// Delete, then confirm the 404 surfaces as a ResponseError.
	if _, err := deleteUser.Exec(ctx, client, DeleteUserInput{ID: created.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = getUser.Exec(ctx, client, GetUserInput{ID: created.ID})
	var respErr *courier.ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if respErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", respErr.StatusCode)
	}
}

func TestRealWorld_QueryAndValidation(t *testing.T) {
	store := newUserStore()
	server := newUserAPI(store)
	defer server.Close()

	client := server.Client(nil)
	ctx := context.Background()

	createUser := courier.MustEndpoint[CreateUserInput, User]("create-user", http.MethodPost, "users").
		WithValidation().
		WithMiddleware(courier.DeclaredContentType())
	listUsers := courier.MustEndpoint[ListUsersInput, UserListOutput]("list-users", http.MethodGet, "users")

	// Invalid input never reaches the server.
	_, err := createUser.Exec(ctx, client, CreateUserInput{Name: "Bob", Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(server.Captures()) != 0 {
		t.Errorf("invalid input reached the server: %d captures", len(server.Captures()))
	}

	for i := 0; i < 3; i++ {
		_, err := createUser.Exec(ctx, client, CreateUserInput{
			Name:  fmt.Sprintf("user-%d", i),
			Email: fmt.Sprintf("user-%d@example.com", i),
		})
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	page := 1
	listed, err := listUsers.Exec(ctx, client, ListUsersInput{Page: &page})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listed.Total != 3 {
		t.Errorf("expected 3 users, got %d", listed.Total)
	}

	capture := server.LastCapture()
	if capture.Query.Get("page") != "1" {
		t.Errorf("expected page=1, got %v", capture.Query)
	}
	if capture.Query.Has("email") {
		t.Errorf("nil optional query param leaked: %v", capture.Query)
	}
}

func TestRealWorld_EnvelopeAndAuth(t *testing.T) {
	server := couriertest.NewAPIServer()
	defer server.Close()

	server.Handle(http.MethodGet, "/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"1","name":"Alice","email":"alice@example.com"},"meta":{"version":1}}`))
	})

	client := server.Client(nil)
	ctx := context.Background()

	profile := courier.MustEndpoint[courier.NoBody, User]("get-profile", http.MethodGet, "profile").
		WithTransform(courier.StripEnvelope("data"))

	// Without auth the endpoint fails on status.
	if _, err := profile.Exec(ctx, client, courier.NoBody{}); err == nil {
		t.Fatal("expected 401 rejection")
	}

	// Per-call middleware supplies the credential; the transform strips
	// the envelope before typed decoding.
	user, err := profile.Exec(ctx, client, courier.NoBody{}, courier.BearerAuth("secret-token"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}
