// Package view models the browser client's UI state as an explicit,
// serializable struct driven by typed events. Every user interaction maps
// to one event; mutations follow an invalidate-then-reload policy with no
// optimistic updates.
package view

import (
	"context"
	"log/slog"

	"inkwell/internal/client"
	"inkwell/internal/models"
)

// pageSize matches the listing window the browser client requests.
const pageSize = 5

// Form is the state of the create/edit modal. An empty EditID means the
// form creates a new post; otherwise it edits the named one.
type Form struct {
	Open     bool   `json:"open"`
	EditID   string `json:"editId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// State is the complete, serializable UI state.
type State struct {
	Page     int            `json:"page"`
	Pages    int            `json:"pages"`
	Search   string         `json:"search"`
	Category string         `json:"category"`
	Posts    []*models.Post `json:"posts"`
	Total    int64          `json:"total"`
	Form     Form           `json:"form"`
}

// Event is a user interaction the view reacts to.
type Event interface{ isEvent() }

// PageChanged selects a different page of the current listing.
type PageChanged struct{ Page int }

// SearchTyped updates the search box without re-fetching.
type SearchTyped struct{ Text string }

// SearchSubmitted runs the current search from page 1.
type SearchSubmitted struct{}

// CategoryChanged switches the category filter and resets to page 1.
type CategoryChanged struct{ Category string }

// FormOpened opens the modal; a nil Post opens it in create mode.
type FormOpened struct{ Post *models.Post }

// DraftChanged replaces the form's draft fields.
type DraftChanged struct{ Title, Content, Category string }

// FormClosed discards the draft and closes the modal.
type FormClosed struct{}

// FormSubmitted performs the create-or-update, closes the modal, and
// reloads the listing.
type FormSubmitted struct{}

func (PageChanged) isEvent()     {}
func (SearchTyped) isEvent()     {}
func (SearchSubmitted) isEvent() {}
func (CategoryChanged) isEvent() {}
func (FormOpened) isEvent()      {}
func (DraftChanged) isEvent()    {}
func (FormClosed) isEvent()      {}
func (FormSubmitted) isEvent()   {}

// View drives the API client from UI events and holds the current state.
type View struct {
	api   *client.Client
	log   *slog.Logger
	state State
}

// New creates a view bound to the given API client.
func New(api *client.Client, log *slog.Logger) *View {
	if log == nil {
		log = slog.Default()
	}
	return &View{
		api: api,
		log: log,
		state: State{
			Page:  1,
			Posts: []*models.Post{},
		},
	}
}

// State returns a copy of the current UI state.
func (v *View) State() State {
	return v.state
}

// Init performs the initial listing fetch ("on mount").
func (v *View) Init(ctx context.Context) {
	v.reload(ctx)
}

// Dispatch applies one event to the state, re-fetching where the
// interaction demands it. Failed requests are logged and leave the prior
// state visible; there is no user-facing error state.
func (v *View) Dispatch(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case PageChanged:
		page := e.Page
		if page < 1 {
			page = 1
		}
		if v.state.Pages > 0 && page > v.state.Pages {
			page = v.state.Pages
		}
		v.state.Page = page
		v.reload(ctx)

	case SearchTyped:
		v.state.Search = e.Text

	case SearchSubmitted:
		v.state.Page = 1
		v.reload(ctx)

	case CategoryChanged:
		v.state.Category = e.Category
		v.state.Page = 1
		v.reload(ctx)

	case FormOpened:
		v.state.Form = Form{Open: true}
		if e.Post != nil {
			v.state.Form.EditID = e.Post.ID
			v.state.Form.Title = e.Post.Title
			v.state.Form.Content = e.Post.Content
			v.state.Form.Category = e.Post.Category
		}

	case DraftChanged:
		v.state.Form.Title = e.Title
		v.state.Form.Content = e.Content
		v.state.Form.Category = e.Category

	case FormClosed:
		v.state.Form = Form{}

	case FormSubmitted:
		v.submit(ctx)
	}
}

// submit performs create-or-update depending on form mode, then closes the
// modal and reloads the listing unconditionally.
func (v *View) submit(ctx context.Context) {
	form := v.state.Form
	var err error
	if form.EditID == "" {
		_, err = v.api.CreatePost(ctx, client.CreateParams{
			Title:    form.Title,
			Content:  form.Content,
			Category: form.Category,
		})
	} else {
		_, err = v.api.UpdatePost(ctx, form.EditID, client.UpdateParams{
			Title:    &form.Title,
			Content:  &form.Content,
			Category: &form.Category,
		})
	}
	if err != nil {
		v.log.Error("form submit failed", slog.String("error", err.Error()))
	}

	v.state.Form = Form{}
	v.reload(ctx)
}

// Delete removes a post and reloads the listing.
func (v *View) Delete(ctx context.Context, id string) {
	if err := v.api.DeletePost(ctx, id); err != nil {
		v.log.Error("delete failed", slog.String("id", id), slog.String("error", err.Error()))
	}
	v.reload(ctx)
}

func (v *View) reload(ctx context.Context) {
	result, err := v.api.ListPosts(ctx, client.ListParams{
		Page:     v.state.Page,
		Limit:    pageSize,
		Search:   v.state.Search,
		Category: v.state.Category,
	})
	if err != nil {
		v.log.Error("listing fetch failed", slog.String("error", err.Error()))
		return
	}

	v.state.Posts = result.Posts
	v.state.Total = result.Total
	v.state.Pages = result.Pages
	v.state.Page = result.Page
}
