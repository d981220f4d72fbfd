package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/zoobzio/courier"
)

// Request/Response types
type CreateWidget struct {
	Category string  `json:"-" endpoint:"skip"` // Parametrizes the path only.
	Name     string  `json:"name"`
	Size     int     `json:"size"`
	Note     *string `json:"note"` // Omitted from the body when nil.
}

type Widget struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Category string `json:"category"`
}

type ListWidgets struct {
	Category string  `json:"-" endpoint:"skip"`
	Tag      *string `json:"tag" endpoint:"query"` // Omitted from the query when nil.
}

type WidgetPage struct {
	Widgets []Widget `json:"widgets"`
	Total   int      `json:"total"`
}

func main() {
	// A stand-in for the remote API this example talks to.
	server := httptest.NewServer(demoAPI())
	defer server.Close()

	client := courier.NewHTTPClient(server.URL, courier.DefaultClientConfig().
		WithUserAgent("courier-example/1.0"))

	create := courier.MustEndpoint[CreateWidget, Widget]("create-widget", http.MethodPost, "widgets/{Category}").
		WithSummary("Create a widget").
		WithMiddleware(courier.DeclaredContentType())

	list := courier.MustEndpoint[ListWidgets, WidgetPage]("list-widgets", http.MethodGet, "widgets/{Category}").
		WithSummary("List widgets in a category")

	ctx := context.Background()

	created, err := create.Exec(ctx, client, CreateWidget{
		Category: "tools",
		Name:     "wrench",
		Size:     3,
	})
	if err != nil {
		log.Fatalf("create failed: %v", err)
	}
	fmt.Printf("created widget %s (%s)\n", created.ID, created.Name)

	// Unset optional query field: no ?tag= marker is sent.
	page, err := list.Exec(ctx, client, ListWidgets{Category: "tools"})
	if err != nil {
		log.Fatalf("list failed: %v", err)
	}
	fmt.Printf("category holds %d widgets\n", page.Total)

	// Export the declared API surface.
	catalog := courier.NewCatalog(nil)
	if err := catalog.Register(create, list); err != nil {
		log.Fatalf("catalog: %v", err)
	}
	doc, err := json.MarshalIndent(catalog.GenerateOpenAPI(), "", "  ")
	if err != nil {
		log.Fatalf("openapi: %v", err)
	}
	fmt.Println(string(doc))
}

// demoAPI serves a tiny in-memory widget store.
func demoAPI() http.Handler {
	mux := http.NewServeMux()
	widgets := []Widget{}

	mux.HandleFunc("POST /widgets/{category}", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name string `json:"name"`
			Size int    `json:"size"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		widget := Widget{
			ID:       fmt.Sprintf("w-%d", len(widgets)+1),
			Name:     in.Name,
			Size:     in.Size,
			Category: r.PathValue("category"),
		}
		widgets = append(widgets, widget)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(widget)
	})

	mux.HandleFunc("GET /widgets/{category}", func(w http.ResponseWriter, r *http.Request) {
		category := r.PathValue("category")
		out := []Widget{}
		for _, widget := range widgets {
			if widget.Category == category {
				out = append(out, widget)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(WidgetPage{Widgets: out, Total: len(out)})
	})

	return mux
}
